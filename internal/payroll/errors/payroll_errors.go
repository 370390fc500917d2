package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.NotFound("employee")
	ErrSnapshotNotFound = apperror.NotFound("payroll snapshot")
	ErrNoSalaryRecord   = apperror.BusinessRule("no salary record effective on or before the end of the period")
	ErrSnapshotLocked   = apperror.New(
		apperror.CodeConflict,
		"payroll snapshot is being generated by another worker",
		http.StatusConflict,
	)
)
