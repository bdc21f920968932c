package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	FullName       string
	Email          string `gorm:"uniqueIndex:uq_employee_email"`
	EmployeeNumber string `gorm:"uniqueIndex:uq_employee_number"`
	Phone          string
	JobTitle       string
	HireDate       time.Time
	Status         string `gorm:"type:varchar(20);default:'ACTIVE'"`

	// Driver fields; only meaningful when IsDriver is set.
	IsDriver      bool
	LicenseNumber string

	CreatedAt time.Time
	UpdatedAt time.Time
}
