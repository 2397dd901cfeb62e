package employee

import (
	"time"

	"go-employee/internal/division"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	Phone      string    `gorm:"size:50"`
	Position   string    `gorm:"size:255;not null"`
	Image      string    // URL foto, upload binary di luar scope
	DivisionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Division   *division.Division
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
