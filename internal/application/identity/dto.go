package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/identity"
)

// RegisterRequest creates a user account, optionally bootstrapping a
// new organization in the same step. When OrganizationName and
// OrganizationSlug are set, the user becomes that organization's admin.
type RegisterRequest struct {
	Username         string `json:"username" binding:"required,min=3,max=100"`
	Email            string `json:"email" binding:"required,email,max=200"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	OrganizationName string `json:"organization_name" binding:"omitempty,min=1,max=200"`
	OrganizationSlug string `json:"organization_slug" binding:"omitempty,min=1,max=100"`
}

// LoginRequest authenticates by username and password
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput carries the access token claims needed to revoke it
type LogoutInput struct {
	UserID        uuid.UUID
	AccessTokenID string
	RemainingTTL  time.Duration
	AllSessions   bool
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse represents a user in responses. OrgID is null until the
// user joins an organization.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       *uuid.UUID `json:"org_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// CreateUserRequest adds a user to the caller's organization
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"max=50"`
	Role     string `json:"role" binding:"required,oneof=admin manager staff"`
}

// UpdateUserRequest changes a user's mutable fields
type UpdateUserRequest struct {
	Phone  *string `json:"phone" binding:"omitempty,max=50"`
	Role   *string `json:"role" binding:"omitempty,oneof=admin manager staff"`
	Status *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateOrganizationRequest creates an organization for a user that has
// none yet
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	Slug string `json:"slug" binding:"required,min=1,max=100"`
}

// UpdateOrganizationRequest changes organization details
type UpdateOrganizationRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	AltPhone *string `json:"alt_phone" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=200"`
	Website  *string `json:"website" binding:"omitempty,max=300"`
	Address  *string `json:"address"`
	LogoURL  *string `json:"logo_url" binding:"omitempty,max=500"`
}

// OrganizationResponse represents an organization in responses
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Phone     string    `json:"phone,omitempty"`
	AltPhone  string    `json:"alt_phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website,omitempty"`
	Address   string    `json:"address,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		OrgID:       user.OrgID,
		Username:    user.Username,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        string(user.Role),
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToOrganizationResponse converts a domain organization to its response form
func ToOrganizationResponse(org *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Status:    string(org.Status),
		Phone:     org.Phone,
		AltPhone:  org.AltPhone,
		Email:     org.Email,
		Website:   org.Website,
		Address:   org.Address,
		LogoURL:   org.LogoURL,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}
