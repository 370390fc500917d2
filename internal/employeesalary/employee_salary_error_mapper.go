package employeesalary

import (
	"errors"
	"strings"

	employeesalaryerrors "go-payroll/internal/employeesalary/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueSalaryViolation(err) {
		return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
	}
	return err
}

func isUniqueSalaryViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_salary_effective"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_salary_effective")
}
