package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-payroll/internal/bracket"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	Calculate(ctx context.Context, employeeID string, year, month int) (SnapshotResponse, error)
	CalculateAll(ctx context.Context, year, month int) ([]SnapshotResponse, error)
	GenerateForMonth(ctx context.Context, year, month int) (BatchResult, error)
	GetSnapshot(ctx context.Context, employeeID string, year, month int) (SnapshotResponse, error)
	ListSnapshots(ctx context.Context, year, month int) ([]SnapshotResponse, error)
	RequestGeneration(ctx context.Context, year, month int) (GenerationRequestResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	deps     Dependencies
	opts     Options
	inflight singleflight.Group
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if deps.Locker == nil {
		deps.Locker = NoopLocker{}
	}
	if opts.Workers <= 0 {
		opts.Workers = config.DefaultBatchWorkers
	}
	if opts.SuccessThresholdPercent <= 0 || opts.SuccessThresholdPercent > 100 {
		opts.SuccessThresholdPercent = config.DefaultSuccessThresholdPercent
	}
	return &service{db: db, repo: repo, deps: deps, opts: opts, logger: l}
}

// MeetsSuccessThreshold reports whether succeeded reaches percent of total, rounded up.
// An empty workforce counts as success.
func MeetsSuccessThreshold(total, succeeded, percent int) bool {
	if total == 0 {
		return true
	}
	required := (total*percent + 99) / 100
	return succeeded >= required
}

func (s *service) Calculate(ctx context.Context, employeeID string, year, month int) (SnapshotResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SnapshotResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return SnapshotResponse{}, err
	}

	emp, err := s.deps.Employees.FindActiveByID(ctx, employeeID)
	if err != nil {
		return SnapshotResponse{}, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return SnapshotResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	brackets, err := s.deps.Brackets.ActiveBrackets(ctx, bracket.KindServiceYears)
	if err != nil {
		return SnapshotResponse{}, fmt.Errorf("load service brackets: %w", err)
	}

	snap, err := s.compute(ctx, *emp, year, month, brackets)
	if err != nil {
		return SnapshotResponse{}, err
	}
	return mapToPreview(snap), nil
}

// CalculateAll previews every active employee without persisting anything.
// Employees whose calculation fails are logged and left out.
func (s *service) CalculateAll(ctx context.Context, year, month int) ([]SnapshotResponse, error) {
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	log := contextutil.GetLogger(ctx, s.logger)

	employees, err := s.deps.Employees.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active employees: %w", err)
	}
	brackets, err := s.deps.Brackets.ActiveBrackets(ctx, bracket.KindServiceYears)
	if err != nil {
		return nil, fmt.Errorf("load service brackets: %w", err)
	}

	results := make([]*PayrollSnapshot, len(employees))
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			snap, err := s.compute(ctx, emp, year, month, brackets)
			if err != nil {
				log.Warn("payroll preview skipped employee",
					zap.String("employee_id", emp.ID.String()),
					zap.Int("year", year),
					zap.Int("month", month),
					zap.Error(err),
				)
				return nil
			}
			results[i] = &snap
			return nil
		})
	}
	_ = g.Wait()

	previews := make([]SnapshotResponse, 0, len(results))
	for _, snap := range results {
		if snap != nil {
			previews = append(previews, mapToPreview(*snap))
		}
	}
	return previews, nil
}

type outcome int

const (
	outcomeCreated outcome = iota + 1
	outcomeExisting
)

// GenerateForMonth persists a snapshot for every active employee that does not have
// one yet. Per-employee failures are logged and counted, never returned. An error is
// returned only when the run cannot start.
func (s *service) GenerateForMonth(ctx context.Context, year, month int) (BatchResult, error) {
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return BatchResult{}, err
	}
	log := contextutil.GetLogger(ctx, s.logger)

	runNumber := s.nextRunNumber(ctx, year, month)
	log = log.With(
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int64("run_number", runNumber),
	)

	employees, err := s.deps.Employees.FindActive(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("load active employees: %w", err)
	}
	brackets, err := s.deps.Brackets.ActiveBrackets(ctx, bracket.KindServiceYears)
	if err != nil {
		return BatchResult{}, fmt.Errorf("load service brackets: %w", err)
	}

	log.Info("payroll generation started",
		zap.Int("employees", len(employees)),
		zap.Int("workers", s.opts.Workers),
	)

	outcomes := make([]outcome, len(employees))
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			o, err := s.generateOne(ctx, emp, year, month, brackets, runNumber)
			if err != nil {
				log.Error("payroll generation failed for employee",
					zap.String("employee_id", emp.ID.String()),
					zap.Error(err),
				)
				return nil
			}
			outcomes[i] = o
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{Year: year, Month: month, RunNumber: runNumber, Total: len(employees)}
	for _, o := range outcomes {
		switch o {
		case outcomeCreated:
			result.Created++
		case outcomeExisting:
			result.SkippedExisting++
		default:
			result.Failed++
		}
	}
	result.Succeeded = result.Created + result.SkippedExisting
	result.Success = MeetsSuccessThreshold(result.Total, result.Succeeded, s.opts.SuccessThresholdPercent)

	log.Info("payroll generation completed",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("created", result.Created),
		zap.Int("skipped_existing", result.SkippedExisting),
		zap.Int("failed", result.Failed),
		zap.Bool("success", result.Success),
	)
	return result, nil
}

func snapshotKey(employeeID uuid.UUID, year, month int) string {
	return fmt.Sprintf("payroll:snapshot:%s:%04d-%02d", employeeID, year, month)
}

// generateOne makes sure exactly one worker, in this process or any other, computes
// a given employee and period.
func (s *service) generateOne(
	ctx context.Context,
	emp employee.Employee,
	year, month int,
	brackets []bracket.Bracket,
	runNumber int64,
) (outcome, error) {
	key := snapshotKey(emp.ID, year, month)
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		release, acquired, err := s.deps.Locker.Acquire(ctx, key+":lock")
		if err != nil {
			return outcome(0), fmt.Errorf("acquire snapshot lock: %w", err)
		}
		defer release()
		if !acquired {
			return outcome(0), payrollerrors.ErrSnapshotLocked
		}

		exists, err := s.repo.Exists(ctx, emp.ID.String(), year, month)
		if err != nil {
			return outcome(0), fmt.Errorf("check snapshot: %w", err)
		}
		if exists {
			return outcomeExisting, nil
		}

		snap, err := s.compute(ctx, emp, year, month, brackets)
		if err != nil {
			return outcome(0), err
		}

		created, err := s.persist(ctx, &snap, runNumber)
		if err != nil {
			return outcome(0), err
		}
		if !created {
			return outcomeExisting, nil
		}
		return outcomeCreated, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(outcome), nil
}

func (s *service) compute(
	ctx context.Context,
	emp employee.Employee,
	year, month int,
	brackets []bracket.Bracket,
) (PayrollSnapshot, error) {
	lastDay := LastDayOfMonth(year, month)
	employeeID := emp.ID.String()

	salary, err := s.deps.Salaries.MostRecent(ctx, employeeID, lastDay)
	if err != nil {
		return PayrollSnapshot{}, fmt.Errorf("load salary: %w", err)
	}
	if salary == nil {
		return PayrollSnapshot{}, fmt.Errorf("employee %s for %04d-%02d: %w", employeeID, year, month, payrollerrors.ErrNoSalaryRecord)
	}

	in := CalculationInput{
		EmployeeID:                    emp.ID,
		Year:                          year,
		Month:                         month,
		HireDate:                      emp.HireDate,
		BaseSalary:                    salary.BaseSalary,
		DepartmentIncentivePercentage: emp.DepartmentIncentive(),
		ServiceBrackets:               brackets,
		AbsenceAdjustmentPercentage:   decimal.Zero,
	}

	record, err := s.deps.Absences.FindByEmployeePeriod(ctx, employeeID, year, month)
	if err != nil {
		return PayrollSnapshot{}, fmt.Errorf("load absence record: %w", err)
	}
	if record != nil {
		in.AbsenceDays = record.AbsenceDays
		in.AbsenceAdjustmentPercentage = record.AdjustmentPercentage
	}

	return Calculate(in), nil
}

// persist writes the snapshot and its outbox event in one transaction. It reports
// false when a snapshot for the same key already exists.
func (s *service) persist(ctx context.Context, snap *PayrollSnapshot, runNumber int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	created, err := s.repo.WithTx(tx).CreateIfAbsent(ctx, snap)
	if err != nil {
		return false, fmt.Errorf("store snapshot: %w", err)
	}
	if !created {
		return false, nil
	}

	event, err := snapshotGeneratedEvent(ctx, *snap, runNumber)
	if err != nil {
		return false, err
	}
	if err := s.deps.Outbox.WithTx(tx).Create(ctx, event); err != nil {
		return false, fmt.Errorf("enqueue snapshot event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) nextRunNumber(ctx context.Context, year, month int) int64 {
	if s.deps.Counter == nil {
		return 0
	}
	n, err := s.deps.Counter.NextValue(ctx, counter.PayrollRunKey(year, month))
	if err != nil {
		s.logger.Warn("payroll run counter unavailable", zap.Error(err))
		return 0
	}
	return n
}

func (s *service) GetSnapshot(ctx context.Context, employeeID string, year, month int) (SnapshotResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SnapshotResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return SnapshotResponse{}, err
	}

	snap, err := s.repo.FindByEmployeePeriod(ctx, employeeID, year, month)
	if err != nil {
		return SnapshotResponse{}, err
	}
	if snap == nil {
		return SnapshotResponse{}, payrollerrors.ErrSnapshotNotFound
	}
	return mapToResponse(*snap), nil
}

func (s *service) ListSnapshots(ctx context.Context, year, month int) ([]SnapshotResponse, error) {
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	snaps, err := s.repo.FindAllByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	res := make([]SnapshotResponse, len(snaps))
	for i, snap := range snaps {
		res[i] = mapToResponse(snap)
	}
	return res, nil
}

// RequestGeneration queues a GenerateForMonth run for the consumer through the outbox.
func (s *service) RequestGeneration(ctx context.Context, year, month int) (GenerationRequestResponse, error) {
	if err := apperror.ValidatePeriod(year, month); err != nil {
		return GenerationRequestResponse{}, err
	}

	requestID := contextutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	event, err := kafka.NewOutboxEvent(
		events.PayrollGenerationRequestedTopic,
		events.PayrollGenerationRequestedType,
		kafka.Aggregate{Type: "payroll_period", ID: fmt.Sprintf("%04d-%02d", year, month)},
		requestID,
		events.PayrollGenerationRequestedEvent{
			EventType:  events.PayrollGenerationRequestedType,
			Year:       year,
			Month:      month,
			RequestID:  requestID,
			OccurredAt: time.Now().UTC(),
		},
	)
	if err != nil {
		return GenerationRequestResponse{}, err
	}

	if err := s.deps.Outbox.Create(ctx, event); err != nil {
		return GenerationRequestResponse{}, fmt.Errorf("enqueue generation request: %w", err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("payroll generation requested",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("outbox_id", event.ID),
	)
	return GenerationRequestResponse{
		RequestID: requestID,
		Year:      year,
		Month:     month,
		Status:    "queued",
	}, nil
}

func snapshotGeneratedEvent(ctx context.Context, snap PayrollSnapshot, runNumber int64) (kafka.OutboxEvent, error) {
	return kafka.NewOutboxEvent(
		events.PayrollSnapshotGeneratedTopic,
		events.PayrollSnapshotGeneratedType,
		kafka.Aggregate{Type: "payroll_snapshot", ID: snap.ID.String()},
		contextutil.GetRequestID(ctx),
		events.PayrollSnapshotGeneratedEvent{
			EventType:   events.PayrollSnapshotGeneratedType,
			SnapshotID:  snap.ID.String(),
			EmployeeID:  snap.EmployeeID.String(),
			Year:        snap.Year,
			Month:       snap.Month,
			GrossSalary: snap.GrossSalary.StringFixed(2),
			RunNumber:   runNumber,
			OccurredAt:  time.Now().UTC(),
		},
	)
}

func mapToPreview(snap PayrollSnapshot) SnapshotResponse {
	resp := mapToResponse(snap)
	resp.ID = ""
	resp.CreatedAt = nil
	return resp
}

func mapToResponse(snap PayrollSnapshot) SnapshotResponse {
	resp := SnapshotResponse{
		ID:                              snap.ID.String(),
		EmployeeID:                      snap.EmployeeID.String(),
		Year:                            snap.Year,
		Month:                           snap.Month,
		BaseSalary:                      snap.BaseSalary,
		DepartmentIncentivePercentage:   snap.DepartmentIncentivePercentage,
		DepartmentIncentiveAmount:       snap.DepartmentIncentiveAmount,
		YearsOfService:                  snap.YearsOfService,
		ServiceYearsIncentivePercentage: snap.ServiceYearsIncentivePercentage,
		ServiceYearsIncentiveAmount:     snap.ServiceYearsIncentiveAmount,
		AbsenceDays:                     snap.AbsenceDays,
		AttendanceAdjustmentPercentage:  snap.AttendanceAdjustmentPercentage,
		AttendanceAdjustmentAmount:      snap.AttendanceAdjustmentAmount,
		GrossSalary:                     snap.GrossSalary,
	}
	if !snap.CreatedAt.IsZero() {
		createdAt := snap.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}
