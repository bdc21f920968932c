package inventory

import "time"

type CreateItemRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	Quantity     int64  `json:"quantity" binding:"omitempty,gte=0"`
	ReorderLevel int64  `json:"reorder_level" binding:"omitempty,gte=0"`
	Location     string `json:"location"`
}

type UpdateItemRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	ReorderLevel int64  `json:"reorder_level" binding:"omitempty,gte=0"`
	Location     string `json:"location"`
}

type AdjustStockRequest struct {
	Quantity int64  `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"required,oneof=RECEIVED DISPATCH DAMAGE CORRECTION"`
	Notes    string `json:"notes"`
}

type ItemResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Unit         string `json:"unit"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorder_level"`
	Location     string `json:"location,omitempty"`
	LowStock     bool   `json:"low_stock"`
}

type StockAdjustmentResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes,omitempty"`
	ResultQty int64     `json:"result_qty"`
	CreatedAt time.Time `json:"created_at"`
}
