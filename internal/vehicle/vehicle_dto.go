package vehicle

type CreateVehicleRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year" binding:"omitempty,gte=1950"`
	CapacityKg  int64  `json:"capacity_kg" binding:"omitempty,gte=0"`
	Status      string `json:"status" binding:"omitempty,oneof=AVAILABLE IN_SERVICE MAINTENANCE RETIRED"`
}

type UpdateVehicleRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year" binding:"omitempty,gte=1950"`
	CapacityKg  int64  `json:"capacity_kg" binding:"omitempty,gte=0"`
	Status      string `json:"status" binding:"omitempty,oneof=AVAILABLE IN_SERVICE MAINTENANCE RETIRED"`
}

type VehicleResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	PlateNumber string `json:"plate_number"`
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Year        int    `json:"year,omitempty"`
	CapacityKg  int64  `json:"capacity_kg"`
	Status      string `json:"status"`
}
