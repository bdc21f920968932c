package delivery

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending          = "pending"
	StatusPickupInProgress = "pickup_in_progress"
	StatusInTransit        = "in_transit"
	StatusDelivered        = "delivered"
	StatusReturned         = "returned"
	StatusFailed           = "failed"
	StatusCancelled        = "cancelled"
)

// ActiveStatuses are the non-terminal states; a vehicle or driver
// holding a delivery in one of them is considered busy.
var ActiveStatuses = []string{StatusPending, StatusPickupInProgress, StatusInTransit}

func IsTerminalStatus(status string) bool {
	switch status {
	case StatusDelivered, StatusReturned, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type Delivery struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TrackingNumber string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_delivery_tracking"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID      *uuid.UUID `gorm:"type:uuid;index"`

	OriginAddress string  `gorm:"type:text;not null"`
	OriginLat     float64 `gorm:"not null"`
	OriginLng     float64 `gorm:"not null"`
	DestAddress   string  `gorm:"type:text;not null"`
	DestLat       float64 `gorm:"not null"`
	DestLng       float64 `gorm:"not null"`

	Status string `gorm:"type:varchar(30);not null;default:'pending'"`
	Notes  string `gorm:"type:text"`

	DistanceMeters float64 `gorm:"not null;default:0"`
	EstimatedAt    *time.Time
	ETA            *time.Time `gorm:"column:eta"`

	LastLat    *float64
	LastLng    *float64
	LastPingAt *time.Time

	LateNotifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

// Checkpoint rows are append-only; one per accepted transition and one
// per location ping.
type Checkpoint struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(30);not null"`
	Lat        *float64
	Lng        *float64
	Notes      string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Checkpoint) TableName() string {
	return "delivery_checkpoints"
}
