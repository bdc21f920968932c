package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-logistics/internal/delivery"
	deliveryerrors "go-logistics/internal/delivery/errors"
	"go-logistics/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeDeliveryReportRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	reportService delivery.ReportService,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.delivery_report")
	log.Info("delivery report consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("delivery report consumer stopped")
				return
			}
			log.Error("fetch delivery report message failed", zap.Error(err))
			continue
		}

		var event events.DeliveryReportRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode delivery report event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = reportService.Generate(ctx, event.CompanyID, event.DeliveryID)
		if err != nil {
			// stale or replayed events are not retryable
			if errors.Is(err, deliveryerrors.ErrDeliveryNotFound) ||
				errors.Is(err, deliveryerrors.ErrDeliveryNotDelivered) {
				log.Warn("delivery report event not actionable, skipping",
					zap.String("delivery_id", event.DeliveryID),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("generate delivery report failed",
				zap.String("delivery_id", event.DeliveryID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit delivery report message failed", zap.Error(err))
			continue
		}

		log.Info("delivery report generated from event",
			zap.String("delivery_id", event.DeliveryID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
