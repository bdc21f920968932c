package events

import "time"

const DeliveryReportRequestedTopic = "logistics.delivery.report.requested.v1"

type DeliveryReportRequestedEvent struct {
	EventType  string    `json:"event_type"`
	DeliveryID string    `json:"delivery_id"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
