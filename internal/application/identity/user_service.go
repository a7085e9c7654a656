package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/domain/identity"
	"github.com/stockyard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages the users of an organization
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Create adds a user to the caller's organization. Only admins may
// create users.
func (s *UserService) Create(ctx context.Context, orgID uuid.UUID, callerRole string, req CreateUserRequest) (*UserResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}
	if callerRole != string(identity.UserRoleAdmin) {
		return nil, shared.ErrForbidden
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if err := user.JoinOrganization(orgID); err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("org_id", orgID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user of the organization by ID
func (s *UserService) GetByID(ctx context.Context, orgID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users of an organization with pagination
func (s *UserService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	users, err := s.userRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a user's phone, role or status. Role and status
// changes require admin.
func (s *UserService) Update(ctx context.Context, orgID, userID uuid.UUID, callerRole string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if (req.Role != nil || req.Status != nil) && callerRole != string(identity.UserRoleAdmin) {
		return nil, shared.ErrForbidden
	}

	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.UserRole(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch identity.UserStatus(*req.Status) {
		case identity.UserStatusActive:
			user.Activate()
		case identity.UserStatusInactive:
			user.Deactivate()
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Deactivate marks a user inactive; admins cannot deactivate themselves
func (s *UserService) Deactivate(ctx context.Context, orgID, userID, callerID uuid.UUID, callerRole string) error {
	if callerRole != string(identity.UserRoleAdmin) {
		return shared.ErrForbidden
	}
	if userID == callerID {
		return shared.NewDomainError("INVALID_OPERATION", "Cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		return err
	}

	user.Deactivate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User deactivated",
		zap.String("user_id", userID.String()),
		zap.String("by", callerID.String()))

	return nil
}
