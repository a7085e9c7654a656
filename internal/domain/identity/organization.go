package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/stockyard/backend/internal/domain/shared"
)

// OrganizationStatus represents the status of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

// Organization is the tenant of the system. Every inventory record
// (units, products, partners, trade documents) belongs to exactly one
// organization.
type Organization struct {
	shared.BaseAggregateRoot
	Name     string             `gorm:"type:varchar(200);not null;uniqueIndex"`
	Slug     string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status   OrganizationStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Phone    string             `gorm:"type:varchar(50)"`
	AltPhone string             `gorm:"type:varchar(50)"`
	Email    string             `gorm:"type:varchar(200)"`
	Website  string             `gorm:"type:varchar(300)"`
	Address  string             `gorm:"type:text"`
	LogoURL  string             `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewOrganization creates a new organization with required fields
func NewOrganization(name, slug string) (*Organization, error) {
	if err := validateOrganizationName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              strings.ToLower(strings.TrimSpace(slug)),
		Status:            OrganizationStatusActive,
	}, nil
}

// Rename changes the organization name
func (o *Organization) Rename(name string) error {
	if err := validateOrganizationName(name); err != nil {
		return err
	}

	o.Name = strings.TrimSpace(name)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetContact updates the contact details
func (o *Organization) SetContact(phone, altPhone, email, website string) error {
	if len(phone) > 50 || len(altPhone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}
	if len(website) > 300 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 300 characters")
	}

	o.Phone = strings.TrimSpace(phone)
	o.AltPhone = strings.TrimSpace(altPhone)
	o.Email = email
	o.Website = strings.TrimSpace(website)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetAddress updates the street address
func (o *Organization) SetAddress(address string) {
	o.Address = strings.TrimSpace(address)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetLogoURL updates the logo URL
func (o *Organization) SetLogoURL(logoURL string) error {
	if len(logoURL) > 500 {
		return shared.NewDomainError("INVALID_LOGO_URL", "Logo URL cannot exceed 500 characters")
	}

	o.LogoURL = strings.TrimSpace(logoURL)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Suspend marks the organization as suspended
func (o *Organization) Suspend() {
	o.Status = OrganizationStatusSuspended
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Activate marks the organization as active
func (o *Organization) Activate() {
	o.Status = OrganizationStatusActive
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// IsActive returns true if the organization is active
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

func validateOrganizationName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Organization slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Organization slug cannot exceed 100 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Organization slug may only contain lowercase letters, digits and hyphens")
	}
	return nil
}
