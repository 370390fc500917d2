package absence

import "github.com/shopspring/decimal"

type RecordAbsenceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,min=1900,max=9999"`
	Month       int    `json:"month" binding:"required,min=1,max=12"`
	AbsenceDays *int   `json:"absence_days" binding:"required,min=0"`
}

type AbsenceResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	AbsenceDays          int             `json:"absence_days"`
	AdjustmentPercentage decimal.Decimal `json:"adjustment_percentage"`
	ThresholdID          *string         `json:"threshold_id,omitempty"`
}
