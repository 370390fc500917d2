package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeSalary is one entry of the salary ledger. The record in force on a date
// is the one with the latest EffectiveDate on or before it.
type EmployeeSalary struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_employee_salary_effective"`
	BaseSalary    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null;uniqueIndex:uq_employee_salary_effective"`
	Note          string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
