package delivery

import "time"

type CreateDeliveryRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	DriverID   string `json:"driver_id" binding:"omitempty,uuid"`
	VehicleID  string `json:"vehicle_id" binding:"omitempty,uuid"`

	// coordinates are pointers so "missing" and a legitimate 0 (equator,
	// prime meridian) stay distinguishable under binding:"required"
	OriginAddress string   `json:"origin_address" binding:"required"`
	OriginLat     *float64 `json:"origin_lat" binding:"required"`
	OriginLng     *float64 `json:"origin_lng" binding:"required"`
	DestAddress   string   `json:"dest_address" binding:"required"`
	DestLat       *float64 `json:"dest_lat" binding:"required"`
	DestLng       *float64 `json:"dest_lng" binding:"required"`

	Notes string `json:"notes"`
}

type TransitionRequest struct {
	Status string   `json:"status" binding:"required,oneof=pending pickup_in_progress in_transit delivered returned failed cancelled"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Notes  string   `json:"notes"`
}

type LocationUpdateRequest struct {
	Lat   *float64 `json:"lat" binding:"required"`
	Lng   *float64 `json:"lng" binding:"required"`
	Notes string   `json:"notes"`
}

type DeliveryResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	TrackingNumber string `json:"tracking_number"`
	CustomerID     string `json:"customer_id"`
	DriverID       string `json:"driver_id,omitempty"`
	VehicleID      string `json:"vehicle_id,omitempty"`

	OriginAddress string  `json:"origin_address"`
	OriginLat     float64 `json:"origin_lat"`
	OriginLng     float64 `json:"origin_lng"`
	DestAddress   string  `json:"dest_address"`
	DestLat       float64 `json:"dest_lat"`
	DestLng       float64 `json:"dest_lng"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	DistanceMeters float64    `json:"distance_meters"`
	ETA            *time.Time `json:"eta,omitempty"`

	LastLat    *float64   `json:"last_lat,omitempty"`
	LastLng    *float64   `json:"last_lng,omitempty"`
	LastPingAt *time.Time `json:"last_ping_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type CheckpointResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportResponse struct {
	ID              string    `json:"id"`
	DeliveryID      string    `json:"delivery_id"`
	TrackingNumber  string    `json:"tracking_number"`
	CheckpointCount int       `json:"checkpoint_count"`
	DistanceMeters  float64   `json:"distance_meters"`
	TransitSeconds  int64     `json:"transit_seconds"`
	DeliveredAt     time.Time `json:"delivered_at"`
}

// StatusFrame is the JSON frame pushed on the delivery's WebSocket
// channel.
type StatusFrame struct {
	Type       string     `json:"type"`
	DeliveryID string     `json:"delivery_id"`
	Status     string     `json:"status"`
	Lat        *float64   `json:"lat,omitempty"`
	Lng        *float64   `json:"lng,omitempty"`
	ETA        *time.Time `json:"eta,omitempty"`
	SentAt     time.Time  `json:"sent_at"`
}
