package events

import "time"

const (
	PayrollSnapshotGeneratedTopic = "payroll.snapshot.generated.v1"
	PayrollSnapshotGeneratedType  = "payroll.snapshot.generated"
)

type PayrollSnapshotGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	SnapshotID  string    `json:"snapshot_id"`
	EmployeeID  string    `json:"employee_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	GrossSalary string    `json:"gross_salary"`
	RunNumber   int64     `json:"run_number,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
