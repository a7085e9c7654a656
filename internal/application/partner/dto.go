package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/partner"
)

// PartnerRequest is the shared create/update payload for vendors and
// clients; the two collections carry the same contact fields.
type PartnerRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Phone     string     `json:"phone" binding:"max=50"`
	AltPhone  string     `json:"alt_phone" binding:"max=50"`
	Email     string     `json:"email" binding:"omitempty,email,max=200"`
	Website   string     `json:"website" binding:"max=300"`
	Address   string     `json:"address"`
	Notes     string     `json:"notes"`
	CreatedBy *uuid.UUID `json:"-"`
}

// VendorResponse represents a vendor in responses
type VendorResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	AltPhone  string    `json:"alt_phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ClientResponse represents a client in responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	AltPhone  string    `json:"alt_phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToVendorResponse converts a domain vendor to its response form
func ToVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:        vendor.ID,
		OrgID:     vendor.OrgID,
		Name:      vendor.Name,
		Phone:     vendor.Phone,
		AltPhone:  vendor.AltPhone,
		Email:     vendor.Email,
		Website:   vendor.Website,
		Address:   vendor.Address,
		Notes:     vendor.Notes,
		CreatedAt: vendor.CreatedAt,
		UpdatedAt: vendor.UpdatedAt,
		Version:   vendor.Version,
	}
}

// ToClientResponse converts a domain client to its response form
func ToClientResponse(client *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		OrgID:     client.OrgID,
		Name:      client.Name,
		Phone:     client.Phone,
		AltPhone:  client.AltPhone,
		Email:     client.Email,
		Website:   client.Website,
		Address:   client.Address,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
		Version:   client.Version,
	}
}
