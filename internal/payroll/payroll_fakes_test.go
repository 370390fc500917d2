package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go-payroll/internal/absence"
	"go-payroll/internal/bracket"
	"go-payroll/internal/department"
	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeDirectory struct {
	employees []employee.Employee
	err       error
}

func (f *fakeDirectory) FindActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeDirectory) FindActiveByID(ctx context.Context, id string) (*employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID.String() == id {
			found := e
			return &found, nil
		}
	}
	return nil, f.err
}

type fakeSalaries struct {
	mu      sync.Mutex
	records map[uuid.UUID][]employeesalary.EmployeeSalary
}

func newFakeSalaries() *fakeSalaries {
	return &fakeSalaries{records: map[uuid.UUID][]employeesalary.EmployeeSalary{}}
}

func (f *fakeSalaries) add(employeeID uuid.UUID, base string, effective time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[employeeID] = append(f.records[employeeID], employeesalary.EmployeeSalary{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		BaseSalary:    decimal.RequireFromString(base),
		EffectiveDate: effective,
	})
}

func (f *fakeSalaries) MostRecent(ctx context.Context, employeeID string, asOf time.Time) (*employeesalary.EmployeeSalary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *employeesalary.EmployeeSalary
	for _, r := range f.records[uuid.MustParse(employeeID)] {
		if r.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || r.EffectiveDate.After(best.EffectiveDate) {
			found := r
			best = &found
		}
	}
	return best, nil
}

type fakeBrackets struct {
	brackets []bracket.Bracket
	calls    atomic.Int32
}

func (f *fakeBrackets) ActiveBrackets(ctx context.Context, kind bracket.Kind) ([]bracket.Bracket, error) {
	f.calls.Add(1)
	return f.brackets, nil
}

type fakeAbsences struct {
	records map[string]*absence.AbsenceRecord
}

func absenceKey(employeeID string, year, month int) string {
	return employeeID + "|" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (f *fakeAbsences) FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*absence.AbsenceRecord, error) {
	if f.records == nil {
		return nil, nil
	}
	return f.records[absenceKey(employeeID, year, month)], nil
}

// memoryStore is a Repository whose CreateIfAbsent is atomic, like the real upsert.
type memoryStore struct {
	mu        sync.Mutex
	snapshots map[string]payroll.PayrollSnapshot
	inserts   atomic.Int32
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: map[string]payroll.PayrollSnapshot{}}
}

func storeKey(employeeID string, year, month int) string {
	return absenceKey(employeeID, year, month)
}

func (m *memoryStore) WithTx(tx *sql.Tx) payroll.Repository { return m }

func (m *memoryStore) Exists(ctx context.Context, employeeID string, year, month int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.snapshots[storeKey(employeeID, year, month)]
	return ok, nil
}

func (m *memoryStore) FindByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*payroll.PayrollSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snapshots[storeKey(employeeID, year, month)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memoryStore) CreateIfAbsent(ctx context.Context, snapshot *payroll.PayrollSnapshot) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := storeKey(snapshot.EmployeeID.String(), snapshot.Year, snapshot.Month)
	if _, ok := m.snapshots[key]; ok {
		return false, nil
	}
	snap := *snapshot
	snap.CreatedAt = time.Now()
	m.snapshots[key] = snap
	m.inserts.Add(1)
	return true, nil
}

func (m *memoryStore) FindAllByPeriod(ctx context.Context, year, month int) ([]payroll.PayrollSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.PayrollSnapshot
	for _, s := range m.snapshots {
		if s.Year == year && s.Month == month {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

type memoryOutbox struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
	err    error
}

func (o *memoryOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return o }

func (o *memoryOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if o.err != nil {
		return o.err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

func (o *memoryOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, errors.New("not used")
}

func (o *memoryOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (o *memoryOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func (o *memoryOutbox) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

type fakeCounter struct {
	mu   sync.Mutex
	next int64
	err  error
}

func (c *fakeCounter) NextValue(ctx context.Context, counterKey string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.next++
	return c.next, nil
}

type denyLocker struct {
	denied map[string]bool
}

func (l *denyLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	return func() {}, !l.denied[key], nil
}

func newEmployee(hire *time.Time, incentive string) employee.Employee {
	deptID := uuid.New()
	return employee.Employee{
		ID:           uuid.New(),
		DepartmentID: &deptID,
		Department:   &department.Department{ID: deptID, Name: "Engineering", IncentivePercentage: decimal.RequireFromString(incentive)},
		FullName:     "Test Employee",
		HireDate:     hire,
		Active:       true,
	}
}
