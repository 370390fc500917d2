package absenceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrAbsenceAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"Absence for this employee and period is already recorded",
		http.StatusConflict,
	)
	ErrAbsenceNotFound   = apperror.NotFound("absence record")
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrNegativeAbsenceDays = apperror.New(
		apperror.CodeInvalidInput,
		"absence_days cannot be negative",
		http.StatusBadRequest,
	)
)
