package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// Vendor is a supplier the organization purchases goods from.
type Vendor struct {
	shared.OrgAggregateRoot
	Name     string `gorm:"type:varchar(200);not null;index"`
	Phone    string `gorm:"type:varchar(50);index"`
	AltPhone string `gorm:"type:varchar(50)"`
	Email    string `gorm:"type:varchar(200);index"`
	Website  string `gorm:"type:varchar(300)"`
	Address  string `gorm:"type:text"`
	Notes    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with required fields
func NewVendor(orgID uuid.UUID, name string) (*Vendor, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Vendor{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
	}, nil
}

// Update changes the vendor's details
func (v *Vendor) Update(name, phone, altPhone, email, website, address, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if err := validatePartnerContact(phone, altPhone, email, website); err != nil {
		return err
	}

	v.Name = strings.TrimSpace(name)
	v.Phone = strings.TrimSpace(phone)
	v.AltPhone = strings.TrimSpace(altPhone)
	v.Email = strings.ToLower(strings.TrimSpace(email))
	v.Website = strings.TrimSpace(website)
	v.Address = strings.TrimSpace(address)
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

func validatePartnerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePartnerContact(phone, altPhone, email, website string) error {
	if len(phone) > 50 || len(altPhone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if len(website) > 300 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 300 characters")
	}
	return nil
}
