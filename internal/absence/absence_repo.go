package absence

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=absence_repo.go -destination=mock/absence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *AbsenceRecord) error
	FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*AbsenceRecord, error)
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, record *AbsenceRecord) error {
	return r.conn(ctx).Create(record).Error
}

// FindByEmployeePeriod returns nil, nil when nothing was recorded for the period.
func (r *repository) FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*AbsenceRecord, error) {
	var record AbsenceRecord
	err := r.conn(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
