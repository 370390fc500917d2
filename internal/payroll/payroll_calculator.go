package payroll

import (
	"time"

	"go-payroll/internal/bracket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculationInput carries everything already resolved for one employee and month.
// The absence fields stay zero when nothing was recorded for the month.
type CalculationInput struct {
	EmployeeID                    uuid.UUID
	Year                          int
	Month                         int
	HireDate                      *time.Time
	BaseSalary                    decimal.Decimal
	DepartmentIncentivePercentage decimal.Decimal
	ServiceBrackets               []bracket.Bracket
	AbsenceDays                   int
	AbsenceAdjustmentPercentage   decimal.Decimal
}

// LastDayOfMonth returns the final calendar day of the month in UTC.
func LastDayOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// YearsOfService counts whole anniversaries of hireDate reached on or before asOf.
// A missing hire date, or one after asOf, yields 0.
func YearsOfService(hireDate *time.Time, asOf time.Time) int {
	if hireDate == nil {
		return 0
	}
	hire := hireDate.UTC()
	years := asOf.Year() - hire.Year()
	if asOf.Month() < hire.Month() || (asOf.Month() == hire.Month() && asOf.Day() < hire.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// IncentiveAmount is base * pct / 100 truncated to cents.
func IncentiveAmount(base, percentage decimal.Decimal) decimal.Decimal {
	return base.Mul(percentage).Div(hundred).Truncate(2)
}

// Calculate builds an unsaved snapshot. It has no side effects.
func Calculate(in CalculationInput) PayrollSnapshot {
	lastDay := LastDayOfMonth(in.Year, in.Month)
	years := YearsOfService(in.HireDate, lastDay)

	servicePct := decimal.Zero
	var serviceBracketID *uuid.UUID
	if matched := bracket.Match(in.ServiceBrackets, years); matched != nil {
		servicePct = matched.Percentage
		id := matched.ID
		serviceBracketID = &id
	}

	snap := PayrollSnapshot{
		ID:                              uuid.New(),
		EmployeeID:                      in.EmployeeID,
		Year:                            in.Year,
		Month:                           in.Month,
		BaseSalary:                      in.BaseSalary,
		DepartmentIncentivePercentage:   in.DepartmentIncentivePercentage,
		DepartmentIncentiveAmount:       IncentiveAmount(in.BaseSalary, in.DepartmentIncentivePercentage),
		YearsOfService:                  years,
		ServiceBracketID:                serviceBracketID,
		ServiceYearsIncentivePercentage: servicePct,
		ServiceYearsIncentiveAmount:     IncentiveAmount(in.BaseSalary, servicePct),
		AbsenceDays:                     in.AbsenceDays,
		AttendanceAdjustmentPercentage:  in.AbsenceAdjustmentPercentage,
		AttendanceAdjustmentAmount:      IncentiveAmount(in.BaseSalary, in.AbsenceAdjustmentPercentage),
	}
	snap.GrossSalary = snap.Gross()
	return snap
}
