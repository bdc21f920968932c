package hr

type CreateProfileRequest struct {
	EmployeeID         *string `json:"employee_id"`
	PayByDay           bool    `json:"pay_by_day"`
	PayByHour          bool    `json:"pay_by_hour"`
	PayByMonth         bool    `json:"pay_by_month"`
	DailyRate          string  `json:"daily_rate"`
	HourlyRate         string  `json:"hourly_rate"`
	MonthlyRate        string  `json:"monthly_rate"`
	PaymentInterval    string  `json:"payment_interval" binding:"required"`
	PaymentBusinessDay int     `json:"payment_business_day"`
}

type UpdateProfileRequest struct {
	EmployeeID         *string `json:"employee_id"`
	PayByDay           bool    `json:"pay_by_day"`
	PayByHour          bool    `json:"pay_by_hour"`
	PayByMonth         bool    `json:"pay_by_month"`
	DailyRate          string  `json:"daily_rate"`
	HourlyRate         string  `json:"hourly_rate"`
	MonthlyRate        string  `json:"monthly_rate"`
	PaymentInterval    string  `json:"payment_interval" binding:"required"`
	PaymentBusinessDay int     `json:"payment_business_day"`
}

type ProfileResponse struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	EmployeeID          *string `json:"employee_id,omitempty"`
	PayByDay            bool    `json:"pay_by_day"`
	PayByHour           bool    `json:"pay_by_hour"`
	PayByMonth          bool    `json:"pay_by_month"`
	DailyRate           string  `json:"daily_rate"`
	HourlyRate          string  `json:"hourly_rate"`
	MonthlyRate         string  `json:"monthly_rate"`
	PaymentInterval     string  `json:"payment_interval"`
	PaymentBusinessDay  int     `json:"payment_business_day"`
	DaysWorked          int     `json:"days_worked"`
	HoursWorked         string  `json:"hours_worked"`
	CurrentPeriodAmount string  `json:"current_period_amount"`
	TotalPaid           string  `json:"total_paid"`
	LastPaymentDate     *string `json:"last_payment_date,omitempty"`
	NextPaymentDate     *string `json:"next_payment_date,omitempty"`
}

type CreateWorkedDayRequest struct {
	Date string `json:"date" binding:"required"`
}

type WorkedDayResponse struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Date      string `json:"date"`
}

type CreateWorkHourRequest struct {
	Date      string  `json:"date" binding:"required"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Hours     *string `json:"hours"`
}

type UpdateWorkHourRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Hours     *string `json:"hours"`
}

type WorkHourResponse struct {
	ID        string  `json:"id"`
	ProfileID string  `json:"profile_id"`
	Date      string  `json:"date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Hours     string  `json:"hours"`
}

type PaymentHistoryResponse struct {
	ID          string `json:"id"`
	ProfileID   string `json:"profile_id"`
	PaymentDate string `json:"payment_date"`
	AmountPaid  string `json:"amount_paid"`
	PaymentType string `json:"payment_type"`
}

type WorkHistoryResponse struct {
	ID        string  `json:"id"`
	PaymentID string  `json:"payment_id"`
	Date      string  `json:"date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Hours     string  `json:"hours"`
}

type ProcessPaymentResponse struct {
	Profile ProfileResponse        `json:"profile"`
	Payment PaymentHistoryResponse `json:"payment"`
}
