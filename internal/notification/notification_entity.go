package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeDeliveryStatus = "delivery_status"
	TypeDeliveryLate   = "delivery_late"
	TypePaymentSettled = "payment_settled"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(50);not null"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Body        string    `gorm:"type:text"`
	ReferenceID string    `gorm:"type:varchar(64);index"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}
