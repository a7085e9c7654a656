package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/domain/partner"
	"github.com/stockyard/backend/internal/domain/shared"
)

// ClientService handles client business operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, orgID uuid.UUID, req PartnerRequest) (*ClientResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}

	client, err := partner.NewClient(orgID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := client.Update(req.Name, req.Phone, req.AltPhone, req.Email, req.Website, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		client.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, orgID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForOrg(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients of an organization with pagination
func (s *ClientService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	clients, err := s.clientRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.clientRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a client's details
func (s *ClientService) Update(ctx context.Context, orgID, clientID uuid.UUID, req PartnerRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForOrg(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}

	if err := client.Update(req.Name, req.Phone, req.AltPhone, req.Email, req.Website, req.Address, req.Notes); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client that no sale references
func (s *ClientService) Delete(ctx context.Context, orgID, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByIDForOrg(ctx, orgID, clientID)
	if err != nil {
		return err
	}

	referenced, err := s.clientRepo.IsReferenced(ctx, client.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.ErrEntityInUse
	}

	return s.clientRepo.Delete(ctx, client.ID)
}
