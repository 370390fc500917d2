package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PeriodQuery struct {
	Year  int `form:"year" binding:"required,min=1900,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

type GenerateRequest struct {
	Year  int `json:"year" binding:"required,min=1900,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

type SnapshotResponse struct {
	ID                              string          `json:"id,omitempty"`
	EmployeeID                      string          `json:"employee_id"`
	Year                            int             `json:"year"`
	Month                           int             `json:"month"`
	BaseSalary                      decimal.Decimal `json:"base_salary"`
	DepartmentIncentivePercentage   decimal.Decimal `json:"department_incentive_percentage"`
	DepartmentIncentiveAmount       decimal.Decimal `json:"department_incentive_amount"`
	YearsOfService                  int             `json:"years_of_service"`
	ServiceYearsIncentivePercentage decimal.Decimal `json:"service_years_incentive_percentage"`
	ServiceYearsIncentiveAmount     decimal.Decimal `json:"service_years_incentive_amount"`
	AbsenceDays                     int             `json:"absence_days"`
	AttendanceAdjustmentPercentage  decimal.Decimal `json:"attendance_adjustment_percentage"`
	AttendanceAdjustmentAmount      decimal.Decimal `json:"attendance_adjustment_amount"`
	GrossSalary                     decimal.Decimal `json:"gross_salary"`
	CreatedAt                       *time.Time      `json:"created_at,omitempty"`
}

// BatchResult summarizes one GenerateForMonth run. Success is the overall indicator.
type BatchResult struct {
	Year            int   `json:"year"`
	Month           int   `json:"month"`
	RunNumber       int64 `json:"run_number"`
	Total           int   `json:"total"`
	Succeeded       int   `json:"succeeded"`
	Created         int   `json:"created"`
	SkippedExisting int   `json:"skipped_existing"`
	Failed          int   `json:"failed"`
	Success         bool  `json:"success"`
}

type GenerationRequestResponse struct {
	RequestID string `json:"request_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Status    string `json:"status"`
}
