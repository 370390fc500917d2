package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]EmployeeSalary, error)
	MostRecent(ctx context.Context, employeeID string, asOf time.Time) (*EmployeeSalary, error)
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

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.conn(ctx).Create(salary).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		Order("created_at DESC").
		Find(&salaries).Error
	return salaries, err
}

// MostRecent returns nil, nil when the employee has no salary effective on or before asOf.
func (r *repository) MostRecent(ctx context.Context, employeeID string, asOf time.Time) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("effective_date <= ?", asOf.Format("2006-01-02")).
		Order("effective_date DESC").
		Order("created_at DESC").
		Take(&salary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &salary, nil
}
