package employeesalaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSalaryEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary for this employee and effective date already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid effective_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"base_salary cannot be negative",
		http.StatusBadRequest,
	)
)
