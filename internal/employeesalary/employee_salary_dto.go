package employeesalary

import "github.com/shopspring/decimal"

type CreateEmployeeSalaryRequest struct {
	EmployeeID    string          `json:"employee_id" binding:"required,uuid"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	EffectiveDate string          `json:"effective_date" binding:"required"`
	Note          string          `json:"note"`
}

type EmployeeSalaryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	EffectiveDate string          `json:"effective_date"`
	Note          string          `json:"note,omitempty"`
}
