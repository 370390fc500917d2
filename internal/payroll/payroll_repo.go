package payroll

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Exists(ctx context.Context, employeeID string, year, month int) (bool, error)
	FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*PayrollSnapshot, error)
	CreateIfAbsent(ctx context.Context, snapshot *PayrollSnapshot) (bool, error)
	FindAllByPeriod(ctx context.Context, year, month int) ([]PayrollSnapshot, error)
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

func (r *repository) Exists(ctx context.Context, employeeID string, year, month int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&PayrollSnapshot{}).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		Count(&count).Error
	return count > 0, err
}

// FindByEmployeePeriod returns nil, nil when no snapshot exists.
func (r *repository) FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*PayrollSnapshot, error) {
	var snapshot PayrollSnapshot
	err := r.conn(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		Take(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// CreateIfAbsent inserts the snapshot unless one already exists for the same employee
// and period. It reports false without error when another writer got there first.
func (r *repository) CreateIfAbsent(ctx context.Context, snapshot *PayrollSnapshot) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(snapshot)
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindAllByPeriod(ctx context.Context, year, month int) ([]PayrollSnapshot, error) {
	var snapshots []PayrollSnapshot
	err := r.conn(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("employee_id ASC").
		Find(&snapshots).Error
	return snapshots, err
}
