package directory

// Data demo untuk mode offline, mengikuti seed aplikasi aslinya.

func DemoDivisions() []Division {
	return []Division{
		{ID: "div-001", Name: "Mobile Apps"},
		{ID: "div-002", Name: "QA"},
		{ID: "div-003", Name: "Full Stack"},
		{ID: "div-004", Name: "Backend"},
		{ID: "div-005", Name: "Frontend"},
		{ID: "div-006", Name: "UI/UX Designer"},
	}
}

func DemoEmployees() []Employee {
	divs := DemoDivisions()
	byName := make(map[string]Division, len(divs))
	for _, d := range divs {
		byName[d.Name] = d
	}

	return []Employee{
		{
			ID:       "emp-001",
			Name:     "Akbar Ryyan Saputra",
			Phone:    "081234567890",
			Position: "Backend Developer",
			Division: byName["Backend"],
			Image:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&auto=format&fit=crop&q=60",
		},
		{
			ID:       "emp-002",
			Name:     "Siti Nurhaliza",
			Phone:    "081234567891",
			Position: "Frontend Developer",
			Division: byName["Frontend"],
			Image:    "https://images.unsplash.com/photo-1494790108755-2616b332c3c5?w=400&auto=format&fit=crop&q=60",
		},
		{
			ID:       "emp-003",
			Name:     "Budi Santoso",
			Phone:    "081234567892",
			Position: "Mobile Developer",
			Division: byName["Mobile Apps"],
			Image:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&auto=format&fit=crop&q=60",
		},
		{
			ID:       "emp-004",
			Name:     "Andi Setiawan",
			Phone:    "081234567893",
			Position: "QA Engineer",
			Division: byName["QA"],
			Image:    "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400&auto=format&fit=crop&q=60",
		},
		{
			ID:       "emp-005",
			Name:     "Maya Sari",
			Phone:    "081234567894",
			Position: "UI/UX Designer",
			Division: byName["UI/UX Designer"],
			Image:    "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=400&auto=format&fit=crop&q=60",
		},
		{
			ID:       "emp-006",
			Name:     "Rizky Pratama",
			Phone:    "081234567895",
			Position: "Full Stack Developer",
			Division: byName["Full Stack"],
			Image:    "https://images.unsplash.com/photo-1519345182560-3f2917c472ef?w=400&auto=format&fit=crop&q=60",
		},
	}
}
