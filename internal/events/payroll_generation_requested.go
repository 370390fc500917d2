package events

import "time"

const (
	PayrollGenerationRequestedTopic = "payroll.generation.requested.v1"
	PayrollGenerationRequestedType  = "payroll.generation.requested"
)

type PayrollGenerationRequestedEvent struct {
	EventType  string    `json:"event_type"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
