package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts pending event inside the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs("e1", "r1", "payroll_snapshot", "s1", "payroll.snapshot.generated", "topic", []byte(`{}`), kafka.OutboxStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := kafka.NewOutboxRepository(db).WithTx(tx)
		err = repo.Create(ctx, kafka.OutboxEvent{
			ID:            "e1",
			RequestID:     "r1",
			AggregateType: "payroll_snapshot",
			AggregateID:   "s1",
			EventType:     "payroll.snapshot.generated",
			Topic:         "topic",
			Payload:       []byte(`{}`),
		})
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects event without payload", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		err = kafka.NewOutboxRepository(db).Create(ctx, kafka.OutboxEvent{ID: "e1", Topic: "topic"})

		assert.ErrorIs(t, err, kafka.ErrInvalidOutboxEvent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	retryAt := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("e1", "r1", "payroll_period", "2024-03", "payroll.generation.requested", "topic", []byte(`{}`), kafka.OutboxStatusFailed, 2, retryAt)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxRetries, 10).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	if assert.Len(t, events, 1) {
		assert.Equal(t, "2024-03", events[0].AggregateID)
		assert.Equal(t, "r1", events[0].RequestID)
		assert.Equal(t, 2, events[0].RetryCount)
		assert.Equal(t, retryAt, events[0].NextRetryAt)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewOutboxEvent(t *testing.T) {
	t.Run("encodes payload as pending event", func(t *testing.T) {
		event, err := kafka.NewOutboxEvent("topic", "payroll.generation.requested",
			kafka.Aggregate{Type: "payroll_period", ID: "2024-03"}, "r1",
			map[string]int{"year": 2024})

		assert.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)
		assert.Equal(t, "2024-03", event.AggregateID)
		assert.JSONEq(t, `{"year":2024}`, string(event.Payload))
	})

	t.Run("requires topic", func(t *testing.T) {
		_, err := kafka.NewOutboxEvent("", "x", kafka.Aggregate{}, "", struct{}{})

		assert.ErrorIs(t, err, kafka.ErrInvalidOutboxEvent)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		_, err := kafka.NewOutboxEvent("topic", "x", kafka.Aggregate{}, "", make(chan int))

		assert.Error(t, err)
	})
}
