package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Item struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU          string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_item_sku"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Unit         string    `gorm:"type:varchar(20);default:'unit'"`
	Quantity     int64     `gorm:"not null;default:0"`
	ReorderLevel int64     `gorm:"not null;default:0"`
	Location     string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Item) TableName() string {
	return "inventory_items"
}

const (
	AdjustmentReasonReceived  = "RECEIVED"
	AdjustmentReasonDispatch  = "DISPATCH"
	AdjustmentReasonDamage    = "DAMAGE"
	AdjustmentReasonCorrected = "CORRECTION"
)

// StockAdjustment is the append-only ledger behind every quantity change.
type StockAdjustment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int64     `gorm:"not null"`
	Reason     string    `gorm:"type:varchar(50);not null"`
	Notes      string    `gorm:"type:text"`
	ResultQty  int64     `gorm:"not null"`
	AdjustedBy string    `gorm:"type:varchar(100)"`
	CreatedAt  time.Time
}

func (StockAdjustment) TableName() string {
	return "inventory_stock_adjustments"
}
