package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-logistics/internal/events"
	"go-logistics/internal/hr"
	hrerrors "go-logistics/internal/hr/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle provisions a default payroll profile for
// every new employee. Rates stay zero until HR fills them in.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	profileService hr.ProfileService,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = profileService.Create(ctx, event.CompanyID, hr.CreateProfileRequest{
			EmployeeID:         &event.EmployeeID,
			PayByDay:           true,
			DailyRate:          "0",
			PaymentInterval:    hr.IntervalMonthly,
			PaymentBusinessDay: 1,
		})
		if err != nil {
			if errors.Is(err, hrerrors.ErrProfileAlreadyExists) {
				log.Warn("payroll profile already exists for event, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("provision default payroll profile failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("payroll profile provisioned from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
