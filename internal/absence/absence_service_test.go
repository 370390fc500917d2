package absence_test

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/absence"
	absenceerrors "go-payroll/internal/absence/errors"
	absenceMock "go-payroll/internal/absence/mock"
	"go-payroll/internal/bracket"
	"go-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeMatcher struct {
	matchFn func(ctx context.Context, kind bracket.Kind, input int) (*bracket.Bracket, error)
}

func (f *fakeMatcher) Match(ctx context.Context, kind bracket.Kind, input int) (*bracket.Bracket, error) {
	return f.matchFn(ctx, kind, input)
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *absenceMock.MockRepository
	matcher *fakeMatcher
	service absence.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := absenceMock.NewMockRepository(ctrl)
	matcher := &fakeMatcher{
		matchFn: func(ctx context.Context, kind bracket.Kind, input int) (*bracket.Bracket, error) {
			return nil, nil
		},
	}

	return &serviceDeps{
		sqlMock: sqlMock,
		repo:    repo,
		matcher: matcher,
		service: absence.NewService(db, repo, matcher),
	}
}

func intPtr(v int) *int { return &v }

func TestAbsenceService_Record(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("stores the resolved threshold percentage", func(t *testing.T) {
		deps := setupServiceTest(t)
		thresholdID := uuid.New()
		deps.matcher.matchFn = func(ctx context.Context, kind bracket.Kind, input int) (*bracket.Bracket, error) {
			assert.Equal(t, bracket.KindAbsenceDays, kind)
			assert.Equal(t, 3, input)
			return &bracket.Bracket{ID: thresholdID, Kind: kind, MinBound: 3, MaxBound: intPtr(5), Percentage: decimal.NewFromInt(-2), Active: true}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, r *absence.AbsenceRecord) error {
				assert.Equal(t, employeeID, r.EmployeeID)
				assert.Equal(t, 3, r.AbsenceDays)
				assert.True(t, r.AdjustmentPercentage.Equal(decimal.NewFromInt(-2)))
				assert.Equal(t, thresholdID, *r.ThresholdID)
				return nil
			})

		resp, err := deps.service.Record(ctx, absence.RecordAbsenceRequest{
			EmployeeID:  employeeID.String(),
			Year:        2024,
			Month:       3,
			AbsenceDays: intPtr(3),
		})

		assert.NoError(t, err)
		assert.Equal(t, "-2", resp.AdjustmentPercentage.String())
		assert.Equal(t, thresholdID.String(), *resp.ThresholdID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no matching threshold records zero adjustment", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Record(ctx, absence.RecordAbsenceRequest{
			EmployeeID:  employeeID.String(),
			Year:        2024,
			Month:       3,
			AbsenceDays: intPtr(0),
		})

		assert.NoError(t, err)
		assert.True(t, resp.AdjustmentPercentage.IsZero())
		assert.Nil(t, resp.ThresholdID)
	})

	t.Run("duplicate period is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_absence_employee_period"})

		_, err := deps.service.Record(ctx, absence.RecordAbsenceRequest{
			EmployeeID:  employeeID.String(),
			Year:        2024,
			Month:       3,
			AbsenceDays: intPtr(1),
		})

		assert.ErrorIs(t, err, absenceerrors.ErrAbsenceAlreadyRecorded)
		assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("matcher failure is surfaced", func(t *testing.T) {
		deps := setupServiceTest(t)
		boom := errors.New("bracket store down")
		deps.matcher.matchFn = func(ctx context.Context, kind bracket.Kind, input int) (*bracket.Bracket, error) {
			return nil, boom
		}

		_, err := deps.service.Record(ctx, absence.RecordAbsenceRequest{
			EmployeeID:  employeeID.String(),
			Year:        2024,
			Month:       3,
			AbsenceDays: intPtr(1),
		})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("validation", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Record(ctx, absence.RecordAbsenceRequest{EmployeeID: "x", Year: 2024, Month: 3, AbsenceDays: intPtr(1)})
		assert.ErrorIs(t, err, absenceerrors.ErrInvalidEmployeeID)

		_, err = deps.service.Record(ctx, absence.RecordAbsenceRequest{EmployeeID: employeeID.String(), Year: 2024, Month: 13, AbsenceDays: intPtr(1)})
		assert.ErrorIs(t, err, apperror.ErrInvalidPeriod)

		_, err = deps.service.Record(ctx, absence.RecordAbsenceRequest{EmployeeID: employeeID.String(), Year: 2024, Month: 3, AbsenceDays: intPtr(-1)})
		assert.ErrorIs(t, err, absenceerrors.ErrNegativeAbsenceDays)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Get(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByEmployeePeriod(gomock.Any(), employeeID.String(), 2024, 3).
			Return(&absence.AbsenceRecord{ID: uuid.New(), EmployeeID: employeeID, Year: 2024, Month: 3, AbsenceDays: 4, AdjustmentPercentage: decimal.NewFromInt(-2)}, nil)

		resp, err := deps.service.Get(ctx, employeeID.String(), 2024, 3)

		assert.NoError(t, err)
		assert.Equal(t, 4, resp.AbsenceDays)
	})

	t.Run("missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByEmployeePeriod(gomock.Any(), employeeID.String(), 2024, 3).
			Return(nil, nil)

		_, err := deps.service.Get(ctx, employeeID.String(), 2024, 3)

		assert.ErrorIs(t, err, absenceerrors.ErrAbsenceNotFound)
		assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	})
}
