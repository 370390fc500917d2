package employeesalary

import (
	"context"
	"database/sql"
	"time"

	employeesalaryerrors "go-payroll/internal/employeesalary/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeSalaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}

	if req.BaseSalary.IsNegative() {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrNegativeBaseSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		BaseSalary:    req.BaseSalary.Round(2),
		EffectiveDate: effectiveDate,
		Note:          req.Note,
	}

	if err := qtx.Create(ctx, salary); err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	s.logger.Info("salary record created",
		zap.String("employee_id", req.EmployeeID),
		zap.String("effective_date", req.EffectiveDate),
	)
	return mapToResponse(*salary), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeSalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeesalaryerrors.ErrInvalidEmployeeID
	}

	salaries, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(salaries), nil
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	return EmployeeSalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		BaseSalary:    salary.BaseSalary,
		EffectiveDate: salary.EffectiveDate.Format("2006-01-02"),
		Note:          salary.Note,
	}
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}
