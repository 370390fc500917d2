package department

import "github.com/shopspring/decimal"

type CreateDepartmentRequest struct {
	Name                string          `json:"name" binding:"required"`
	IncentivePercentage decimal.Decimal `json:"incentive_percentage"`
}

type UpdateDepartmentRequest struct {
	Name                string          `json:"name" binding:"required"`
	IncentivePercentage decimal.Decimal `json:"incentive_percentage"`
}

type DepartmentResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	IncentivePercentage decimal.Decimal `json:"incentive_percentage"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}
