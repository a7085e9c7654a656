package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/domain/partner"
	"github.com/stockyard/backend/internal/domain/shared"
)

// VendorService handles vendor business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, orgID uuid.UUID, req PartnerRequest) (*VendorResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}

	vendor, err := partner.NewVendor(orgID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := vendor.Update(req.Name, req.Phone, req.AltPhone, req.Email, req.Website, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		vendor.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, orgID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForOrg(ctx, orgID, vendorID)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors of an organization with pagination
func (s *VendorService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[VendorResponse], error) {
	vendors, err := s.vendorRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.vendorRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a vendor's details
func (s *VendorService) Update(ctx context.Context, orgID, vendorID uuid.UUID, req PartnerRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForOrg(ctx, orgID, vendorID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Update(req.Name, req.Phone, req.AltPhone, req.Email, req.Website, req.Address, req.Notes); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete removes a vendor that no purchase references
func (s *VendorService) Delete(ctx context.Context, orgID, vendorID uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByIDForOrg(ctx, orgID, vendorID)
	if err != nil {
		return err
	}

	referenced, err := s.vendorRepo.IsReferenced(ctx, vendor.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.ErrEntityInUse
	}

	return s.vendorRepo.Delete(ctx, vendor.ID)
}
