package events

import "time"

const DeliveryStatusChangedTopic = "logistics.delivery.status.changed.v1"

type DeliveryStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	DeliveryID string    `json:"delivery_id"`
	CompanyID  string    `json:"company_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
