package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/identity"
	"github.com/stockyard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrganizationService manages organizations
type OrganizationService struct {
	orgRepo  identity.OrganizationRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(
	orgRepo identity.OrganizationRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates an organization for a user that has none yet and
// promotes them to admin of it
func (s *OrganizationService) Create(ctx context.Context, userID uuid.UUID, req CreateOrganizationRequest) (*OrganizationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasOrganization() {
		return nil, shared.NewDomainError("ALREADY_IN_ORGANIZATION", "User already belongs to an organization")
	}

	taken, err := s.orgRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization name is already taken")
	}

	taken, err = s.orgRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization slug is already taken")
	}

	org, err := identity.NewOrganization(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	if err := user.JoinOrganization(org.ID); err != nil {
		return nil, err
	}
	if err := user.SetRole(identity.UserRoleAdmin); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Organization created",
		zap.String("org_id", org.ID.String()),
		zap.String("slug", org.Slug),
		zap.String("owner", userID.String()))

	response := ToOrganizationResponse(org)
	return &response, nil
}

// GetCurrent returns the caller's organization
func (s *OrganizationService) GetCurrent(ctx context.Context, orgID uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	response := ToOrganizationResponse(org)
	return &response, nil
}

// GetBySlug returns an organization by its unique slug
func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToOrganizationResponse(org)
	return &response, nil
}

// Update changes the caller's organization details; admin only
func (s *OrganizationService) Update(ctx context.Context, orgID uuid.UUID, callerRole string, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	if callerRole != string(identity.UserRoleAdmin) {
		return nil, shared.ErrForbidden
	}

	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != org.Name {
		taken, err := s.orgRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization name is already taken")
		}
		if err := org.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil || req.AltPhone != nil || req.Email != nil || req.Website != nil {
		phone := org.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		altPhone := org.AltPhone
		if req.AltPhone != nil {
			altPhone = *req.AltPhone
		}
		email := org.Email
		if req.Email != nil {
			email = *req.Email
		}
		website := org.Website
		if req.Website != nil {
			website = *req.Website
		}
		if err := org.SetContact(phone, altPhone, email, website); err != nil {
			return nil, err
		}
	}

	if req.Address != nil {
		org.SetAddress(*req.Address)
	}
	if req.LogoURL != nil {
		if err := org.SetLogoURL(*req.LogoURL); err != nil {
			return nil, err
		}
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	response := ToOrganizationResponse(org)
	return &response, nil
}
