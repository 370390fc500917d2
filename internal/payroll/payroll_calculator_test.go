package payroll_test

import (
	"testing"
	"time"

	"go-payroll/internal/bracket"
	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func intPtr(v int) *int { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func serviceBrackets() []bracket.Bracket {
	return []bracket.Bracket{
		{ID: uuid.New(), Kind: bracket.KindServiceYears, MinBound: 0, MaxBound: intPtr(2), Percentage: dec("0"), Active: true},
		{ID: uuid.New(), Kind: bracket.KindServiceYears, MinBound: 3, MaxBound: intPtr(5), Percentage: dec("4"), Active: true},
		{ID: uuid.New(), Kind: bracket.KindServiceYears, MinBound: 6, Percentage: dec("7.5"), Active: true},
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year, month int
		want        time.Time
	}{
		{2024, 2, date(2024, time.February, 29)},
		{2023, 2, date(2023, time.February, 28)},
		{1900, 2, date(1900, time.February, 28)},
		{2000, 2, date(2000, time.February, 29)},
		{2024, 4, date(2024, time.April, 30)},
		{2024, 12, date(2024, time.December, 31)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, payroll.LastDayOfMonth(tt.year, tt.month))
	}
}

func TestYearsOfService(t *testing.T) {
	asOf := date(2024, time.March, 31)

	tests := []struct {
		name string
		hire *time.Time
		want int
	}{
		{"no hire date", nil, 0},
		{"anniversary already passed", datePtr(2020, time.March, 20), 4},
		{"anniversary on the day", datePtr(2020, time.March, 31), 4},
		{"anniversary next month", datePtr(2020, time.April, 1), 3},
		{"hired this month", datePtr(2024, time.March, 1), 0},
		{"hired after the period", datePtr(2024, time.May, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payroll.YearsOfService(tt.hire, asOf))
		})
	}

	t.Run("leap day hire before its anniversary", func(t *testing.T) {
		assert.Equal(t, 0, payroll.YearsOfService(datePtr(2020, time.February, 29), date(2021, time.February, 28)))
		assert.Equal(t, 1, payroll.YearsOfService(datePtr(2020, time.February, 29), date(2021, time.March, 31)))
	})
}

func TestIncentiveAmount_TruncatesToCents(t *testing.T) {
	assert.Equal(t, "5000", payroll.IncentiveAmount(dec("50000"), dec("10")).String())
	assert.Equal(t, "499.99", payroll.IncentiveAmount(dec("33333.33"), dec("1.5")).String())
	assert.Equal(t, "-499.99", payroll.IncentiveAmount(dec("33333.33"), dec("-1.5")).String())
	assert.True(t, payroll.IncentiveAmount(dec("50000"), decimal.Zero).IsZero())
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	employeeID := uuid.New()
	brackets := serviceBrackets()

	snap := payroll.Calculate(payroll.CalculationInput{
		EmployeeID:                    employeeID,
		Year:                          2024,
		Month:                         3,
		HireDate:                      datePtr(2020, time.March, 20),
		BaseSalary:                    dec("50000"),
		DepartmentIncentivePercentage: dec("10"),
		ServiceBrackets:               brackets,
		AbsenceDays:                   3,
		AbsenceAdjustmentPercentage:   dec("-2"),
	})

	assert.Equal(t, employeeID, snap.EmployeeID)
	assert.Equal(t, 4, snap.YearsOfService)
	assert.Equal(t, 3, snap.AbsenceDays)
	assert.True(t, snap.DepartmentIncentiveAmount.Equal(dec("5000")))
	assert.True(t, snap.ServiceYearsIncentivePercentage.Equal(dec("4")))
	assert.True(t, snap.ServiceYearsIncentiveAmount.Equal(dec("2000")))
	assert.True(t, snap.AttendanceAdjustmentAmount.Equal(dec("-1000")))
	assert.True(t, snap.GrossSalary.Equal(dec("56000")))
	if assert.NotNil(t, snap.ServiceBracketID) {
		assert.Equal(t, brackets[1].ID, *snap.ServiceBracketID)
	}
}

func TestCalculate_NoBracketOrAbsenceMeansNoAdjustment(t *testing.T) {
	snap := payroll.Calculate(payroll.CalculationInput{
		EmployeeID:                    uuid.New(),
		Year:                          2024,
		Month:                         3,
		BaseSalary:                    dec("42000.50"),
		DepartmentIncentivePercentage: decimal.Zero,
	})

	assert.Equal(t, 0, snap.YearsOfService)
	assert.Nil(t, snap.ServiceBracketID)
	assert.True(t, snap.ServiceYearsIncentiveAmount.IsZero())
	assert.True(t, snap.AttendanceAdjustmentAmount.IsZero())
	assert.True(t, snap.GrossSalary.Equal(dec("42000.50")))
}

func TestCalculate_GrossIdentity(t *testing.T) {
	bases := []string{"0", "1", "999.99", "33333.33", "50000", "123456.78"}
	pcts := []string{"-12.5", "-2", "0", "0.33", "4", "10", "17.25"}

	for _, b := range bases {
		for _, dp := range pcts {
			for _, ap := range pcts {
				snap := payroll.Calculate(payroll.CalculationInput{
					EmployeeID:                    uuid.New(),
					Year:                          2024,
					Month:                         3,
					HireDate:                      datePtr(2015, time.July, 1),
					BaseSalary:                    dec(b),
					DepartmentIncentivePercentage: dec(dp),
					ServiceBrackets:               serviceBrackets(),
					AbsenceAdjustmentPercentage:   dec(ap),
				})

				want := snap.BaseSalary.
					Add(snap.DepartmentIncentiveAmount).
					Add(snap.ServiceYearsIncentiveAmount).
					Add(snap.AttendanceAdjustmentAmount)
				assert.True(t, snap.GrossSalary.Equal(want), "base=%s dept=%s abs=%s", b, dp, ap)
				assert.True(t, snap.GrossSalary.Equal(snap.GrossSalary.Truncate(2)))
			}
		}
	}
}
