package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string    `gorm:"type:varchar(255);not null"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	RegistrationNumber string    `gorm:"type:varchar(100)"`
	Address            string    `gorm:"type:text"`
	Phone              string    `gorm:"type:varchar(50)"`
	Timezone           string    `gorm:"type:varchar(64);default:'UTC'"`
	IsActive           bool      `gorm:"default:true"`

	Registrations []CompanyRegistration `gorm:"foreignKey:CompanyID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Company) TableName() string {
	return "companies"
}
