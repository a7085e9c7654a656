package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	shared.OrgRepository[Vendor]

	// IsReferenced reports whether any purchase references the vendor
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	shared.OrgRepository[Client]

	// IsReferenced reports whether any sale references the client
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
