package bracket_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-payroll/internal/bracket"
	bracketerrors "go-payroll/internal/bracket/errors"
	bracketMock "go-payroll/internal/bracket/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service bracket.Service
	repo    *bracketMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := bracketMock.NewMockRepository(ctrl)
	svc := bracket.NewService(db, repo)

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestBracketService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockKind(gomock.Any(), bracket.KindServiceYears).Return(nil)
		deps.repo.EXPECT().
			FindActiveByKind(gomock.Any(), bracket.KindServiceYears).
			Return([]bracket.Bracket{newBracket(0, intPtr(2), "0")}, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, b *bracket.Bracket) error {
				assert.Equal(t, bracket.KindServiceYears, b.Kind)
				assert.Equal(t, 3, b.MinBound)
				assert.Equal(t, 5, *b.MaxBound)
				assert.True(t, b.Active)
				assert.NotEqual(t, uuid.Nil, b.ID)
				return nil
			})

		resp, err := deps.service.Create(ctx, bracket.KindServiceYears, bracket.CreateBracketRequest{
			Label:      "3-5 years",
			MinBound:   3,
			MaxBound:   intPtr(5),
			Percentage: decimal.NewFromInt(4),
		})

		assert.NoError(t, err)
		assert.Equal(t, "service_years", resp.Kind)
		assert.True(t, resp.Percentage.Equal(decimal.NewFromInt(4)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects unbounded bracket sharing a boundary", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockKind(gomock.Any(), bracket.KindServiceYears).Return(nil)
		deps.repo.EXPECT().
			FindActiveByKind(gomock.Any(), bracket.KindServiceYears).
			Return([]bracket.Bracket{newBracket(0, intPtr(5), "2")}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Create(ctx, bracket.KindServiceYears, bracket.CreateBracketRequest{
			MinBound:   5,
			Percentage: decimal.NewFromInt(6),
		})

		assert.ErrorIs(t, err, bracketerrors.ErrBracketOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed bounds never open a transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, bracket.KindAbsenceDays, bracket.CreateBracketRequest{
			MinBound: 5,
			MaxBound: intPtr(1),
		})

		assert.ErrorIs(t, err, bracketerrors.ErrInvalidBracketBounds)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestBracketService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ignores the bracket being edited", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		edited := newBracket(0, intPtr(5), "1")
		edited.Kind = bracket.KindAbsenceDays
		neighbour := newBracket(6, nil, "-3")
		neighbour.Kind = bracket.KindAbsenceDays

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndKind(gomock.Any(), bracket.KindAbsenceDays, edited.ID.String()).
			Return(&edited, nil)
		deps.repo.EXPECT().LockKind(gomock.Any(), bracket.KindAbsenceDays).Return(nil)
		deps.repo.EXPECT().
			FindActiveByKind(gomock.Any(), bracket.KindAbsenceDays).
			Return([]bracket.Bracket{edited, neighbour}, nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, b *bracket.Bracket) error {
				assert.Equal(t, 1, b.MinBound)
				assert.Equal(t, 5, *b.MaxBound)
				return nil
			})

		resp, err := deps.service.Update(ctx, bracket.KindAbsenceDays, edited.ID.String(), bracket.UpdateBracketRequest{
			MinBound:   1,
			MaxBound:   intPtr(5),
			Percentage: decimal.NewFromInt(-1),
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.MinBound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("extending into a neighbour is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		edited := newBracket(0, intPtr(5), "1")
		neighbour := newBracket(6, nil, "3")

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndKind(gomock.Any(), bracket.KindServiceYears, edited.ID.String()).
			Return(&edited, nil)
		deps.repo.EXPECT().LockKind(gomock.Any(), bracket.KindServiceYears).Return(nil)
		deps.repo.EXPECT().
			FindActiveByKind(gomock.Any(), bracket.KindServiceYears).
			Return([]bracket.Bracket{edited, neighbour}, nil)

		_, err := deps.service.Update(ctx, bracket.KindServiceYears, edited.ID.String(), bracket.UpdateBracketRequest{
			MinBound: 0,
			MaxBound: intPtr(6),
		})

		assert.ErrorIs(t, err, bracketerrors.ErrBracketOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("deactivating skips the overlap check", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		edited := newBracket(0, intPtr(5), "1")
		inactive := false

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndKind(gomock.Any(), bracket.KindServiceYears, edited.ID.String()).
			Return(&edited, nil)
		deps.repo.EXPECT().FindActiveByKind(gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, bracket.KindServiceYears, edited.ID.String(), bracket.UpdateBracketRequest{
			MinBound: 0,
			MaxBound: intPtr(50),
			Active:   &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndKind(gomock.Any(), bracket.KindServiceYears, gomock.Any()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, bracket.KindServiceYears, uuid.New().String(), bracket.UpdateBracketRequest{})

		assert.ErrorIs(t, err, bracketerrors.ErrBracketNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(ctx, bracket.KindServiceYears, "not-a-uuid", bracket.UpdateBracketRequest{})

		assert.ErrorIs(t, err, bracketerrors.ErrInvalidID)
	})
}

func TestBracketService_Deactivate(t *testing.T) {
	deps := setupServiceTest(t)
	expectTx(t, deps.sqlMock, true)

	b := newBracket(0, intPtr(5), "1")
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndKind(gomock.Any(), bracket.KindServiceYears, b.ID.String()).Return(&b, nil)
	deps.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, updated *bracket.Bracket) error {
			assert.False(t, updated.Active)
			return nil
		})

	err := deps.service.Deactivate(context.Background(), bracket.KindServiceYears, b.ID.String())

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestBracketService_Match(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matching bracket", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindActiveByKind(ctx, bracket.KindAbsenceDays).
			Return([]bracket.Bracket{newBracket(0, intPtr(1), "0"), newBracket(2, intPtr(4), "-2")}, nil)

		got, err := deps.service.Match(ctx, bracket.KindAbsenceDays, 3)

		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.True(t, got.Percentage.Equal(decimal.NewFromInt(-2)))
		}
	})

	t.Run("no match is not an error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindActiveByKind(ctx, bracket.KindAbsenceDays).Return(nil, nil)

		got, err := deps.service.Match(ctx, bracket.KindAbsenceDays, 3)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store error propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindActiveByKind(ctx, bracket.KindAbsenceDays).Return(nil, errors.New("db down"))

		_, err := deps.service.Match(ctx, bracket.KindAbsenceDays, 3)

		assert.Error(t, err)
	})
}

func TestBracketService_ValidateNoOverlap(t *testing.T) {
	ctx := context.Background()
	existing := newBracket(0, intPtr(5), "1")

	t.Run("overlap", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindActiveByKind(ctx, bracket.KindServiceYears).Return([]bracket.Bracket{existing}, nil)

		valid, err := deps.service.ValidateNoOverlap(ctx, bracket.KindServiceYears, 5, intPtr(10), nil)

		assert.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("exclude edited bracket", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindActiveByKind(ctx, bracket.KindServiceYears).Return([]bracket.Bracket{existing}, nil)
		id := existing.ID.String()

		valid, err := deps.service.ValidateNoOverlap(ctx, bracket.KindServiceYears, 5, intPtr(10), &id)

		assert.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("malformed bounds", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.ValidateNoOverlap(ctx, bracket.KindServiceYears, 10, intPtr(5), nil)

		assert.ErrorIs(t, err, bracketerrors.ErrInvalidBracketBounds)
	})
}
