package payroll

import (
	"context"
	"time"

	"go-payroll/internal/absence"
	"go-payroll/internal/bracket"
	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/counter"
)

// EmployeeDirectory is satisfied by employee.Repository.
type EmployeeDirectory interface {
	FindActive(ctx context.Context) ([]employee.Employee, error)
	FindActiveByID(ctx context.Context, id string) (*employee.Employee, error)
}

// SalaryLedger is satisfied by employeesalary.Repository.
type SalaryLedger interface {
	MostRecent(ctx context.Context, employeeID string, asOf time.Time) (*employeesalary.EmployeeSalary, error)
}

// BracketSource is satisfied by bracket.Service.
type BracketSource interface {
	ActiveBrackets(ctx context.Context, kind bracket.Kind) ([]bracket.Bracket, error)
}

// AbsenceLedger is satisfied by absence.Repository.
type AbsenceLedger interface {
	FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*absence.AbsenceRecord, error)
}

type Dependencies struct {
	Employees EmployeeDirectory
	Salaries  SalaryLedger
	Brackets  BracketSource
	Absences  AbsenceLedger
	Outbox    kafka.OutboxRepository
	Counter   counter.Repository // optional
	Locker    KeyLocker          // optional, defaults to NoopLocker
}

type Options struct {
	Workers                 int
	SuccessThresholdPercent int
}
