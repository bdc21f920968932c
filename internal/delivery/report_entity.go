package delivery

import (
	"time"

	"github.com/google/uuid"
)

// Report is the summary row generated asynchronously when a delivery
// reaches delivered.
type Report struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_delivery_report"`
	TrackingNumber  string    `gorm:"type:varchar(30);not null"`
	CheckpointCount int       `gorm:"not null"`
	DistanceMeters  float64   `gorm:"not null"`
	TransitDuration int64     `gorm:"not null"` // seconds from creation to delivery
	DeliveredAt     time.Time `gorm:"not null"`
	CreatedAt       time.Time
}

func (Report) TableName() string {
	return "delivery_reports"
}
