package company

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationType string

const (
	RegistrationTypeTaxID           RegistrationType = "TAX_ID"
	RegistrationTypeBusinessLicense RegistrationType = "BUSINESS_LICENSE"
	RegistrationTypeTransportPermit RegistrationType = "TRANSPORT_PERMIT"
	RegistrationTypeCustomsBroker   RegistrationType = "CUSTOMS_BROKER"
	RegistrationTypeInsurance       RegistrationType = "INSURANCE"
)

func (t RegistrationType) Valid() bool {
	switch t {
	case RegistrationTypeTaxID,
		RegistrationTypeBusinessLicense,
		RegistrationTypeTransportPermit,
		RegistrationTypeCustomsBroker,
		RegistrationTypeInsurance:
		return true
	}
	return false
}

type CompanyRegistration struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uq_company_registration_type"`
	Type      RegistrationType `gorm:"type:varchar(50);not null;uniqueIndex:uq_company_registration_type"`
	Number    string           `gorm:"type:varchar(100);not null"`
	IssuedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
