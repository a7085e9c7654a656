package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	shared.OrgRepository[Purchase]

	// FindByReceiptNumber finds a purchase by its receipt number within
	// an organization
	FindByReceiptNumber(ctx context.Context, orgID uuid.UUID, receiptNumber string) (*Purchase, error)

	// GenerateReceiptNumber produces the next receipt number for the
	// organization, format RC-YYYY-NNNNN
	GenerateReceiptNumber(ctx context.Context, orgID uuid.UUID) (string, error)
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	shared.OrgRepository[Sale]

	// FindByInvoiceNumber finds a sale by its invoice number within an
	// organization
	FindByInvoiceNumber(ctx context.Context, orgID uuid.UUID, invoiceNumber string) (*Sale, error)

	// GenerateInvoiceNumber produces the next invoice number for the
	// organization, format INV-YYYY-NNNNN
	GenerateInvoiceNumber(ctx context.Context, orgID uuid.UUID) (string, error)
}
