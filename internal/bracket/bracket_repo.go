package bracket

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=bracket_repo.go -destination=mock/bracket_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockKind(ctx context.Context, kind Kind) error
	FindActiveByKind(ctx context.Context, kind Kind) ([]Bracket, error)
	FindAllByKind(ctx context.Context, kind Kind) ([]Bracket, error)
	FindByIDAndKind(ctx context.Context, kind Kind, id string) (*Bracket, error)
	Create(ctx context.Context, b *Bracket) error
	Update(ctx context.Context, b *Bracket) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn binds the gorm session to the outer *sql.Tx when there is one, the same
// way gorm's own Begin does.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// LockKind serialises bracket writes of one kind until the surrounding
// transaction ends, so two concurrent creates cannot both pass the overlap check.
func (r *repository) LockKind(ctx context.Context, kind Kind) error {
	return r.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "interval_brackets:"+string(kind)).Error
}

func (r *repository) FindActiveByKind(ctx context.Context, kind Kind) ([]Bracket, error) {
	var brackets []Bracket
	err := r.conn(ctx).
		Where("kind = ? AND active = ?", kind, true).
		Order("min_bound ASC").
		Order("id ASC").
		Find(&brackets).Error
	return brackets, err
}

func (r *repository) FindAllByKind(ctx context.Context, kind Kind) ([]Bracket, error) {
	var brackets []Bracket
	err := r.conn(ctx).
		Where("kind = ?", kind).
		Order("min_bound ASC").
		Order("id ASC").
		Find(&brackets).Error
	return brackets, err
}

func (r *repository) FindByIDAndKind(ctx context.Context, kind Kind, id string) (*Bracket, error) {
	var b Bracket
	err := r.conn(ctx).
		Where("kind = ?", kind).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) Create(ctx context.Context, b *Bracket) error {
	return r.conn(ctx).Create(b).Error
}

func (r *repository) Update(ctx context.Context, b *Bracket) error {
	return r.conn(ctx).Save(b).Error
}
