package employee

import (
	"time"

	"go-payroll/internal/department"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	DepartmentID *uuid.UUID             `gorm:"type:uuid;index"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID;references:ID"`
	FullName     string
	Email        string     `gorm:"uniqueIndex"`
	HireDate     *time.Time `gorm:"type:date"`
	Active       bool       `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// DepartmentIncentive is zero for employees without a department.
func (e Employee) DepartmentIncentive() decimal.Decimal {
	if e.Department == nil {
		return decimal.Zero
	}
	return e.Department.IncentivePercentage
}
