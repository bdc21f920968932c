package delivery

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-logistics/internal/events"
	"go-logistics/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lateCheckBatchSize = 100

// CheckLateDeliveries periodically scans for non-terminal deliveries
// past their ETA and queues a late notification event for each. A
// delivery is flagged at most once.
func CheckLateDeliveries(
	ctx context.Context,
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	logger *zap.Logger,
	interval time.Duration,
) {
	if interval <= 0 {
		interval = time.Minute
	}

	log := logger.Named("delivery.late_checker")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("late delivery checker started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("late delivery checker stopped")
			return
		case <-ticker.C:
			if err := flagLateDeliveries(ctx, db, repo, outbox, log); err != nil {
				log.Error("late delivery check failed", zap.Error(err))
			}
		}
	}
}

func flagLateDeliveries(
	ctx context.Context,
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	logger *zap.Logger,
) error {
	now := time.Now().UTC()

	overdue, err := repo.FindOverdue(ctx, now, lateCheckBatchSize)
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		return nil
	}

	logger.Info("flagging late deliveries", zap.Int("count", len(overdue)))

	for i := range overdue {
		d := overdue[i]
		if err := flagOne(ctx, db, repo, outbox, &d, now); err != nil {
			logger.Error("flag late delivery failed",
				zap.String("delivery_id", d.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func flagOne(
	ctx context.Context,
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	d *Delivery,
	now time.Time,
) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := repo.WithTx(tx)

	d.LateNotifiedAt = &now
	if err := qtx.Update(ctx, d); err != nil {
		return err
	}

	event := events.DeliveryStatusChangedEvent{
		EventType:  "delivery_late",
		DeliveryID: d.ID.String(),
		CompanyID:  d.CompanyID.String(),
		FromStatus: d.Status,
		ToStatus:   d.Status,
		OccurredAt: now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "delivery",
		AggregateID:   d.ID.String(),
		EventType:     event.EventType,
		Topic:         events.DeliveryStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	return tx.Commit()
}
