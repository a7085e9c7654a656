package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// FindByID finds an organization by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindBySlug finds an organization by its unique slug
	FindBySlug(ctx context.Context, slug string) (*Organization, error)

	// FindAll finds all organizations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, error)

	// Save creates or updates an organization
	Save(ctx context.Context, org *Organization) error

	// Delete deletes an organization
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts organizations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if an organization with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsBySlug checks if an organization with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
