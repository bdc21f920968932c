package vehicle

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusAvailable   = "AVAILABLE"
	StatusInService   = "IN_SERVICE"
	StatusMaintenance = "MAINTENANCE"
	StatusRetired     = "RETIRED"
)

type Vehicle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PlateNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_vehicle_plate"`
	Make        string    `gorm:"type:varchar(100)"`
	Model       string    `gorm:"type:varchar(100)"`
	Year        int       `gorm:""`
	CapacityKg  int64     `gorm:"not null;default:0"`
	Status      string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
