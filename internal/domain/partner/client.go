package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// Client is a customer the organization sells goods to.
type Client struct {
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
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(orgID uuid.UUID, name string) (*Client, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Client{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
	}, nil
}

// Update changes the client's details
func (c *Client) Update(name, phone, altPhone, email, website, address, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if err := validatePartnerContact(phone, altPhone, email, website); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = strings.TrimSpace(phone)
	c.AltPhone = strings.TrimSpace(altPhone)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Website = strings.TrimSpace(website)
	c.Address = strings.TrimSpace(address)
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
