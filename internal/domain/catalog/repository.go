package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	shared.OrgRepository[Unit]

	// FindByNameForOrg finds a unit by name within an organization
	FindByNameForOrg(ctx context.Context, orgID uuid.UUID, name string) (*Unit, error)

	// IsReferenced reports whether the unit is used by any product or
	// document line item
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	shared.OrgRepository[Product]

	// FindBySKUForOrg finds a product by SKU within an organization
	FindBySKUForOrg(ctx context.Context, orgID uuid.UUID, sku string) (*Product, error)

	// FindByIDForOrgLocked loads a product row with a write lock, for
	// stock mutation inside a transaction
	FindByIDForOrgLocked(ctx context.Context, orgID, id uuid.UUID) (*Product, error)

	// FindBelowReorderLevel finds products whose stock fell under their
	// reorder threshold
	FindBelowReorderLevel(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Product, error)

	// IsReferenced reports whether the product appears on any document
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
