package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidPeriod = New(
		CodeInvalidInput,
		"invalid period, expected year 1900-9999 and month 1-12",
		http.StatusBadRequest,
	)
)

// NotFound builds a NOT_FOUND error for the named resource.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// BusinessRule builds a BUSINESS_RULE_VIOLATION error.
func BusinessRule(message string) *AppError {
	return New(CodeBusinessRule, message, http.StatusUnprocessableEntity)
}

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}

// ValidatePeriod rejects years outside 1900-9999 and months outside 1-12.
func ValidatePeriod(year, month int) error {
	if year < 1900 || year > 9999 || month < 1 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}
