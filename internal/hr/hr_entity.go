package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	IntervalDaily    = "DAILY"
	IntervalWeekly   = "WEEKLY"
	IntervalBiweekly = "BIWEEKLY"
	IntervalMonthly  = "MONTHLY"
)

const (
	PayTypeDay   = "DAY"
	PayTypeHour  = "HOUR"
	PayTypeMonth = "MONTH"
)

// PayrollProfile holds one employee's payment configuration together
// with the running totals for the current period. Exactly one of
// PayByDay/PayByHour/PayByMonth is true, and the matching rate must be
// positive; Validate enforces both.
type PayrollProfile struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID *uuid.UUID `gorm:"column:employee_id;type:uuid;uniqueIndex:uq_payroll_profile_employee"`

	PayByDay   bool `gorm:"column:pay_by_day;not null;default:false"`
	PayByHour  bool `gorm:"column:pay_by_hour;not null;default:false"`
	PayByMonth bool `gorm:"column:pay_by_month;not null;default:false"`

	DailyRate   decimal.Decimal `gorm:"column:daily_rate;type:numeric(12,2);not null;default:0"`
	HourlyRate  decimal.Decimal `gorm:"column:hourly_rate;type:numeric(12,2);not null;default:0"`
	MonthlyRate decimal.Decimal `gorm:"column:monthly_rate;type:numeric(12,2);not null;default:0"`

	PaymentInterval    string `gorm:"column:payment_interval;type:varchar(10);not null;default:MONTHLY"`
	PaymentBusinessDay int    `gorm:"column:payment_business_day;not null;default:0"` // 1..5, 1 = Monday; 0 = unset

	DaysWorked          int             `gorm:"column:days_worked;not null;default:0"`
	HoursWorked         decimal.Decimal `gorm:"column:hours_worked;type:numeric(10,2);not null;default:0"`
	CurrentPeriodAmount decimal.Decimal `gorm:"column:current_period_amount;type:numeric(12,2);not null;default:0"`
	TotalPaid           decimal.Decimal `gorm:"column:total_paid;type:numeric(14,2);not null;default:0"`

	LastPaymentDate     *time.Time `gorm:"column:last_payment_date;type:date"`
	NextPaymentDate     *time.Time `gorm:"column:next_payment_date;type:date"`
	LastDayRegistered   *time.Time `gorm:"column:last_day_registered;type:timestamptz"`
	LastHoursRegistered *time.Time `gorm:"column:last_hours_registered;type:timestamptz"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PayrollProfile) TableName() string {
	return "payroll_profiles"
}

// PayType returns the label for the active payment type.
func (p *PayrollProfile) PayType() string {
	switch {
	case p.PayByDay:
		return PayTypeDay
	case p.PayByHour:
		return PayTypeHour
	case p.PayByMonth:
		return PayTypeMonth
	default:
		return ""
	}
}

// Rate returns the rate matching the active payment type.
func (p *PayrollProfile) Rate() decimal.Decimal {
	switch {
	case p.PayByDay:
		return p.DailyRate
	case p.PayByHour:
		return p.HourlyRate
	case p.PayByMonth:
		return p.MonthlyRate
	default:
		return decimal.Zero
	}
}

// WorkedDay is one unit of "one day worked", unique per profile+date.
type WorkedDay struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:uq_worked_day_profile_date"`
	Date      time.Time `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_worked_day_profile_date"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (WorkedDay) TableName() string {
	return "worked_days"
}

// WorkHour records hours worked on one date, unique per profile+date.
// Hours is either supplied directly or derived from start/end times.
type WorkHour struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProfileID uuid.UUID       `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:uq_work_hour_profile_date"`
	Date      time.Time       `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_work_hour_profile_date"`
	StartTime *time.Time      `gorm:"column:start_time;type:timestamptz"`
	EndTime   *time.Time      `gorm:"column:end_time;type:timestamptz"`
	Hours     decimal.Decimal `gorm:"column:hours;type:numeric(6,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (WorkHour) TableName() string {
	return "work_hours"
}

// PaymentHistory is the immutable snapshot written at settlement time.
type PaymentHistory struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	ProfileID   uuid.UUID       `gorm:"column:profile_id;type:uuid;not null;index"`
	PaymentDate time.Time       `gorm:"column:payment_date;type:date;not null"`
	AmountPaid  decimal.Decimal `gorm:"column:amount_paid;type:numeric(12,2);not null"`
	PaymentType string          `gorm:"column:payment_type;type:varchar(10);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (PaymentHistory) TableName() string {
	return "payment_histories"
}

// WorkHistory is the per-record copy of the ledger rows that existed at
// settlement time, owned by one PaymentHistory.
type WorkHistory struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PaymentID uuid.UUID       `gorm:"column:payment_id;type:uuid;not null;index"`
	Date      time.Time       `gorm:"column:work_date;type:date;not null"`
	StartTime *time.Time      `gorm:"column:start_time;type:timestamptz"`
	EndTime   *time.Time      `gorm:"column:end_time;type:timestamptz"`
	Hours     decimal.Decimal `gorm:"column:hours;type:numeric(6,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (WorkHistory) TableName() string {
	return "work_histories"
}
