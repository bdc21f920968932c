package consumer

import (
	"context"
	"encoding/json"

	"go-logistics/internal/events"
	"go-logistics/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeDeliveryStatusChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.delivery_status")
	log.Info("delivery status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("delivery status consumer stopped")
				return
			}
			log.Error("fetch delivery status message failed", zap.Error(err))
			continue
		}

		var event events.DeliveryStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode delivery status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.NotifyDeliveryStatusChanged(ctx, event); err != nil {
			log.Error("create delivery status notification failed",
				zap.String("delivery_id", event.DeliveryID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit delivery status message failed", zap.Error(err))
			continue
		}
	}
}

func ConsumePaymentSettled(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payment_settled")
	log.Info("payment settled consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payment settled consumer stopped")
				return
			}
			log.Error("fetch payment settled message failed", zap.Error(err))
			continue
		}

		var event events.PaymentSettledEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payment settled event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.NotifyPaymentSettled(ctx, event); err != nil {
			log.Error("create payment notification failed",
				zap.String("profile_id", event.ProfileID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payment settled message failed", zap.Error(err))
			continue
		}
	}
}
