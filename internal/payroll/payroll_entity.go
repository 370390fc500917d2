package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollSnapshot is the persisted result of one calculation for one employee and month.
// Once stored it is never recomputed or overwritten.
type PayrollSnapshot struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_snapshot_period"`
	Year       int       `gorm:"not null;uniqueIndex:uq_payroll_snapshot_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_payroll_snapshot_period"`

	BaseSalary decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	DepartmentIncentivePercentage decimal.Decimal `gorm:"type:numeric(7,2);not null"`
	DepartmentIncentiveAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	YearsOfService                  int             `gorm:"not null"`
	ServiceBracketID                *uuid.UUID      `gorm:"type:uuid"`
	ServiceYearsIncentivePercentage decimal.Decimal `gorm:"type:numeric(7,2);not null"`
	ServiceYearsIncentiveAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	AbsenceDays                    int             `gorm:"not null"`
	AttendanceAdjustmentPercentage decimal.Decimal `gorm:"type:numeric(7,2);not null"`
	AttendanceAdjustmentAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	GrossSalary decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CreatedAt   time.Time
}

func (PayrollSnapshot) TableName() string {
	return "payroll_snapshots"
}

// Gross recomputes base plus the three amounts.
func (s PayrollSnapshot) Gross() decimal.Decimal {
	return s.BaseSalary.
		Add(s.DepartmentIncentiveAmount).
		Add(s.ServiceYearsIncentiveAmount).
		Add(s.AttendanceAdjustmentAmount)
}
