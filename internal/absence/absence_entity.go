package absence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AbsenceRecord holds an employee's absence day count for one month together with
// the adjustment percentage resolved against the absence thresholds when it was recorded.
type AbsenceRecord struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_absence_employee_period"`
	Year                 int             `gorm:"not null;uniqueIndex:uq_absence_employee_period"`
	Month                int             `gorm:"not null;uniqueIndex:uq_absence_employee_period"`
	AbsenceDays          int             `gorm:"not null"`
	AdjustmentPercentage decimal.Decimal `gorm:"type:numeric(7,2);not null"`
	ThresholdID          *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
