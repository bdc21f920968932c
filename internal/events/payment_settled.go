package events

import "time"

const PaymentSettledTopic = "erp.hr.payment.settled.v1"

type PaymentSettledEvent struct {
	EventType   string    `json:"event_type"`
	ProfileID   string    `json:"profile_id"`
	CompanyID   string    `json:"company_id"`
	AmountPaid  string    `json:"amount_paid"`
	PaymentType string    `json:"payment_type"`
	PaymentDate string    `json:"payment_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
