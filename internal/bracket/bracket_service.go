package bracket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	bracketerrors "go-payroll/internal/bracket/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, kind Kind) ([]BracketResponse, error)
	GetByID(ctx context.Context, kind Kind, id string) (BracketResponse, error)
	Create(ctx context.Context, kind Kind, req CreateBracketRequest) (BracketResponse, error)
	Update(ctx context.Context, kind Kind, id string, req UpdateBracketRequest) (BracketResponse, error)
	Deactivate(ctx context.Context, kind Kind, id string) error
	ActiveBrackets(ctx context.Context, kind Kind) ([]Bracket, error)
	Match(ctx context.Context, kind Kind, input int) (*Bracket, error)
	ValidateNoOverlap(ctx context.Context, kind Kind, minBound int, maxBound *int, excludeID *string) (bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("bracket.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bracket.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, kind Kind) ([]BracketResponse, error) {
	brackets, err := s.repo.FindAllByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(brackets), nil
}

func (s *service) GetByID(ctx context.Context, kind Kind, id string) (BracketResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BracketResponse{}, bracketerrors.ErrInvalidID
	}

	b, err := s.repo.FindByIDAndKind(ctx, kind, id)
	if err != nil {
		return BracketResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Create(ctx context.Context, kind Kind, req CreateBracketRequest) (BracketResponse, error) {
	if err := ValidateBounds(req.MinBound, req.MaxBound); err != nil {
		return BracketResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BracketResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.ensureNoOverlap(ctx, qtx, kind, req.MinBound, req.MaxBound, uuid.Nil); err != nil {
		return BracketResponse{}, err
	}

	b := &Bracket{
		ID:         uuid.New(),
		Kind:       kind,
		Label:      req.Label,
		MinBound:   req.MinBound,
		MaxBound:   req.MaxBound,
		Percentage: req.Percentage,
		Active:     true,
	}

	if err := qtx.Create(ctx, b); err != nil {
		return BracketResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BracketResponse{}, err
	}

	s.logger.Info("bracket created",
		zap.String("kind", string(kind)),
		zap.String("bracket_id", b.ID.String()),
		zap.Int("min_bound", b.MinBound),
		zap.Stringer("percentage", b.Percentage),
	)
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, kind Kind, id string, req UpdateBracketRequest) (BracketResponse, error) {
	bracketID, err := uuid.Parse(id)
	if err != nil {
		return BracketResponse{}, bracketerrors.ErrInvalidID
	}
	if err := ValidateBounds(req.MinBound, req.MaxBound); err != nil {
		return BracketResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BracketResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByIDAndKind(ctx, kind, id)
	if err != nil {
		return BracketResponse{}, mapRepositoryError(err)
	}

	active := b.Active
	if req.Active != nil {
		active = *req.Active
	}

	if active {
		if err := s.ensureNoOverlap(ctx, qtx, kind, req.MinBound, req.MaxBound, bracketID); err != nil {
			return BracketResponse{}, err
		}
	}

	b.Label = req.Label
	b.MinBound = req.MinBound
	b.MaxBound = req.MaxBound
	b.Percentage = req.Percentage
	b.Active = active

	if err := qtx.Update(ctx, b); err != nil {
		return BracketResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BracketResponse{}, err
	}

	s.logger.Info("bracket updated",
		zap.String("kind", string(kind)),
		zap.String("bracket_id", id),
		zap.Bool("active", active),
	)
	return mapToResponse(*b), nil
}

// Deactivate never conflicts: an inactive bracket takes no part in overlap checks.
func (s *service) Deactivate(ctx context.Context, kind Kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return bracketerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByIDAndKind(ctx, kind, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !b.Active {
		return tx.Commit()
	}

	b.Active = false
	if err := qtx.Update(ctx, b); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) ActiveBrackets(ctx context.Context, kind Kind) ([]Bracket, error) {
	return s.repo.FindActiveByKind(ctx, kind)
}

// Match returns nil, nil when no active bracket contains input.
func (s *service) Match(ctx context.Context, kind Kind, input int) (*Bracket, error) {
	brackets, err := s.repo.FindActiveByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	return Match(brackets, input), nil
}

// ValidateNoOverlap reports true when the candidate range can be stored.
func (s *service) ValidateNoOverlap(
	ctx context.Context,
	kind Kind,
	minBound int,
	maxBound *int,
	excludeID *string,
) (bool, error) {
	if err := ValidateBounds(minBound, maxBound); err != nil {
		return false, err
	}

	exclude := uuid.Nil
	if excludeID != nil && *excludeID != "" {
		parsed, err := uuid.Parse(*excludeID)
		if err != nil {
			return false, bracketerrors.ErrInvalidID
		}
		exclude = parsed
	}

	existing, err := s.repo.FindActiveByKind(ctx, kind)
	if err != nil {
		return false, err
	}
	return !HasOverlap(existing, minBound, maxBound, exclude), nil
}

func (s *service) ensureNoOverlap(
	ctx context.Context,
	qtx Repository,
	kind Kind,
	minBound int,
	maxBound *int,
	excludeID uuid.UUID,
) error {
	if err := qtx.LockKind(ctx, kind); err != nil {
		return err
	}

	existing, err := qtx.FindActiveByKind(ctx, kind)
	if err != nil {
		return err
	}

	if HasOverlap(existing, minBound, maxBound, excludeID) {
		s.logger.Warn("bracket overlap rejected",
			zap.String("kind", string(kind)),
			zap.Int("min_bound", minBound),
			zap.Any("max_bound", maxBound),
		)
		return fmt.Errorf("%s [%d, %s]: %w", kind, minBound, formatMax(maxBound), bracketerrors.ErrBracketOverlap)
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bracketerrors.ErrBracketNotFound
	}
	return err
}

func formatMax(maxBound *int) string {
	if maxBound == nil {
		return "inf"
	}
	return fmt.Sprintf("%d", *maxBound)
}

func mapToResponse(b Bracket) BracketResponse {
	return BracketResponse{
		ID:         b.ID.String(),
		Kind:       string(b.Kind),
		Label:      b.Label,
		MinBound:   b.MinBound,
		MaxBound:   b.MaxBound,
		Percentage: b.Percentage,
		Active:     b.Active,
	}
}

func mapToListResponse(brackets []Bracket) []BracketResponse {
	res := make([]BracketResponse, len(brackets))
	for i, b := range brackets {
		res[i] = mapToResponse(b)
	}
	return res
}
