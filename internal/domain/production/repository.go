package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// OrderRepository defines the interface for production order persistence
type OrderRepository interface {
	shared.OrgRepository[Order]

	// FindByOrderNumber finds an order by its number within an organization
	FindByOrderNumber(ctx context.Context, orgID uuid.UUID, orderNumber string) (*Order, error)

	// GenerateOrderNumber produces the next order number for the
	// organization, format MO-YYYY-NNNNN
	GenerateOrderNumber(ctx context.Context, orgID uuid.UUID) (string, error)
}
