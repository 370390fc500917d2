package absence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	absenceerrors "go-payroll/internal/absence/errors"
	"go-payroll/internal/bracket"
	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ThresholdMatcher resolves an absence day count to its configured threshold.
// bracket.Service satisfies it.
type ThresholdMatcher interface {
	Match(ctx context.Context, kind bracket.Kind, input int) (*bracket.Bracket, error)
}

type Service interface {
	Record(ctx context.Context, req RecordAbsenceRequest) (AbsenceResponse, error)
	Get(ctx context.Context, employeeID string, year, month int) (AbsenceResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	matcher ThresholdMatcher
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, matcher ThresholdMatcher, logger ...*zap.Logger) Service {
	l := zap.L().Named("absence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.service")
	}
	return &service{db: db, repo: repo, matcher: matcher, logger: l}
}

// Record stores the absence count with the threshold percentage in force today.
// Later threshold changes never touch an existing record.
func (s *service) Record(ctx context.Context, req RecordAbsenceRequest) (AbsenceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AbsenceResponse{}, absenceerrors.ErrInvalidEmployeeID
	}
	if err := apperror.ValidatePeriod(req.Year, req.Month); err != nil {
		return AbsenceResponse{}, err
	}
	if req.AbsenceDays == nil {
		return AbsenceResponse{}, apperror.RequiredField("absence_days")
	}
	if *req.AbsenceDays < 0 {
		return AbsenceResponse{}, absenceerrors.ErrNegativeAbsenceDays
	}

	threshold, err := s.matcher.Match(ctx, bracket.KindAbsenceDays, *req.AbsenceDays)
	if err != nil {
		return AbsenceResponse{}, fmt.Errorf("resolve absence threshold: %w", err)
	}

	record := &AbsenceRecord{
		ID:                   uuid.New(),
		EmployeeID:           employeeID,
		Year:                 req.Year,
		Month:                req.Month,
		AbsenceDays:          *req.AbsenceDays,
		AdjustmentPercentage: decimal.Zero,
	}
	if threshold != nil {
		thresholdID := threshold.ID
		record.ThresholdID = &thresholdID
		record.AdjustmentPercentage = threshold.Percentage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
		if isUniqueViolation(err) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceAlreadyRecorded
		}
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AbsenceResponse{}, err
	}

	s.logger.Info("absence recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("absence_days", record.AbsenceDays),
		zap.String("adjustment_percentage", record.AdjustmentPercentage.String()),
	)
	return mapToResponse(*record), nil
}

func (s *service) Get(ctx context.Context, employeeID string, year, month int) (AbsenceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AbsenceResponse{}, absenceerrors.ErrInvalidEmployeeID
	}
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return AbsenceResponse{}, err
	}

	record, err := s.repo.FindByEmployeePeriod(ctx, employeeID, year, month)
	if err != nil {
		return AbsenceResponse{}, err
	}
	if record == nil {
		return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
	}
	return mapToResponse(*record), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(r AbsenceRecord) AbsenceResponse {
	resp := AbsenceResponse{
		ID:                   r.ID.String(),
		EmployeeID:           r.EmployeeID.String(),
		Year:                 r.Year,
		Month:                r.Month,
		AbsenceDays:          r.AbsenceDays,
		AdjustmentPercentage: r.AdjustmentPercentage,
	}
	if r.ThresholdID != nil {
		id := r.ThresholdID.String()
		resp.ThresholdID = &id
	}
	return resp
}
