package bracketerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"invalid bracket kind, expected service_years or absence_days",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid bracket id",
		http.StatusBadRequest,
	)
	ErrNegativeMinBound = apperror.New(
		apperror.CodeInvalidInput,
		"min_bound must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidBracketBounds = apperror.New(
		apperror.CodeInvalidInput,
		"max_bound must be greater than or equal to min_bound",
		http.StatusBadRequest,
	)
	ErrBracketOverlap = apperror.New(
		apperror.CodeBusinessRule,
		"bracket range overlaps an existing active bracket",
		http.StatusUnprocessableEntity,
	)
	ErrBracketNotFound = apperror.New(
		apperror.CodeNotFound,
		"bracket not found",
		http.StatusNotFound,
	)
)
