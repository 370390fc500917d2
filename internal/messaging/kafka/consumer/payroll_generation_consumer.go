package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type PayrollGenerator interface {
	GenerateForMonth(ctx context.Context, year, month int) (payroll.BatchResult, error)
}

// ConsumePayrollGenerationRequested runs a batch generation for every request event.
// Malformed or invalid requests are committed and dropped. A run that could not
// start is left uncommitted so it is redelivered; a run that started is committed
// even when it reports failure, since rerunning it is always safe through a new request.
func ConsumePayrollGenerationRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayrollGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_generation")
	log.Info("payroll generation consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll generation consumer stopped")
				return
			}
			log.Error("fetch payroll generation message failed", zap.Error(err))
			continue
		}

		handlePayrollGenerationMessage(ctx, reader, generator, log, msg)
	}
}

func handlePayrollGenerationMessage(
	ctx context.Context,
	reader MessageReader,
	generator PayrollGenerator,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.PayrollGenerationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll generation event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	reqLog := log.With(
		zap.String("request_id", event.RequestID),
		zap.Int("year", event.Year),
		zap.Int("month", event.Month),
	)
	runCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, event.RequestID), reqLog)

	result, err := generator.GenerateForMonth(runCtx, event.Year, event.Month)
	if err != nil {
		if apperror.HasCode(err, apperror.CodeInvalidInput) {
			reqLog.Warn("dropping invalid payroll generation request", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			return
		}
		reqLog.Error("payroll generation run failed to start", zap.Error(err))
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		reqLog.Error("commit payroll generation message failed", zap.Error(err))
		return
	}

	reqLog.Info("payroll generation request processed",
		zap.Int64("run_number", result.RunNumber),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Bool("success", result.Success),
	)
}
