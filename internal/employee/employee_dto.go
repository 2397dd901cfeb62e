package employee

type CreateEmployeeRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Phone    string `json:"phone" form:"phone" binding:"required"`
	Division string `json:"division" form:"division" binding:"required"`
	Position string `json:"position" form:"position" binding:"required"`
	Image    string `json:"image" form:"image"`
}

// UpdateEmployeeRequest bersifat parsial: field nil dibiarkan tidak berubah.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name" form:"name"`
	Phone    *string `json:"phone" form:"phone"`
	Division *string `json:"division" form:"division"`
	Position *string `json:"position" form:"position"`
	Image    *string `json:"image" form:"image"`
}

// ListFilter: name = substring case-insensitive, division_id = exact match.
// Keduanya digabung dengan AND.
type ListFilter struct {
	Name       string
	DivisionID string
}

type EmployeeDivisionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID       string                    `json:"id"`
	Image    string                    `json:"image"`
	Name     string                    `json:"name"`
	Phone    string                    `json:"phone"`
	Division *EmployeeDivisionResponse `json:"division"`
	Position string                    `json:"position"`
}
