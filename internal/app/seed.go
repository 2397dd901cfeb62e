package app

import (
	"context"
	"os"

	"go-employee/internal/auth"
	"go-employee/internal/division"
	"go-employee/internal/employee"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedDivisions = []string{
	"Mobile Apps",
	"QA",
	"Full Stack",
	"Backend",
	"Frontend",
	"UI/UX Designer",
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&division.Division{},
		&employee.Employee{},
		&auth.User{},
	)
}

// seed mengisi data master divisi dan satu user admin. Idempotent: baris
// yang sudah ada tidak disentuh.
func seed(ctx context.Context, db *gorm.DB) error {
	for _, name := range seedDivisions {
		div := division.Division{ID: uuid.New(), Name: name}
		err := db.WithContext(ctx).
			Where("name = ?", name).
			FirstOrCreate(&div).Error
		if err != nil {
			return err
		}
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		zap.L().Warn("admin seed skipped, ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := auth.User{
		ID:       uuid.New(),
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	return db.WithContext(ctx).
		Where("email = ?", email).
		FirstOrCreate(&admin).Error
}
