package departmenterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound  = apperror.NotFound("department")
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrNegativeIncentive = apperror.New(
		apperror.CodeInvalidInput,
		"incentive_percentage cannot be negative",
		http.StatusBadRequest,
	)
)
