package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/application/inventory"
	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
)

// PurchaseService handles purchase business operations. Creation runs
// inside a transaction scope: the document, its items and every stock
// increment commit or roll back together.
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	txScope      inventory.TransactionScope
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo trade.PurchaseRepository, txScope inventory.TransactionScope) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
	}
}

// Create creates a purchase with its items and applies the stock effect
func (s *PurchaseService) Create(ctx context.Context, orgID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ITEMS", "Purchase must contain at least one item")
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	var purchase *trade.Purchase
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		vendor, err := repos.Vendors().FindByIDForOrg(ctx, orgID, req.VendorID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_VENDOR", "Vendor does not exist")
			}
			return err
		}

		receiptNumber, err := repos.Purchases().GenerateReceiptNumber(ctx, orgID)
		if err != nil {
			return err
		}

		purchase, err = trade.NewPurchase(orgID, receiptNumber, vendor.ID, vendor.Name, purchaseDate)
		if err != nil {
			return err
		}
		purchase.Notes = req.Notes
		if req.CreatedBy != nil {
			purchase.SetCreatedBy(*req.CreatedBy)
		}

		for _, line := range req.Items {
			product, unit, err := resolveDocumentLine(ctx, repos, orgID, line.ProductID, line.UnitID)
			if err != nil {
				return err
			}

			item, err := purchase.AddItem(product.ID, product.Name, unit.ID, unit.Name,
				line.Quantity, line.UnitPrice, unit.ConversionFactor)
			if err != nil {
				return err
			}

			if err := product.AddStock(item.BaseQuantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		}

		return repos.Purchases().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, orgID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByIDForOrg(ctx, orgID, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases of an organization with pagination
func (s *PurchaseService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseResponse], error) {
	purchases, err := s.purchaseRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.purchaseRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes document metadata. Items, total and stock history are
// immutable once the purchase exists.
func (s *PurchaseService) Update(ctx context.Context, orgID, purchaseID uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	var purchase *trade.Purchase
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		var err error
		purchase, err = repos.Purchases().FindByIDForOrg(ctx, orgID, purchaseID)
		if err != nil {
			return err
		}

		vendor, err := repos.Vendors().FindByIDForOrg(ctx, orgID, req.VendorID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_VENDOR", "Vendor does not exist")
			}
			return err
		}

		purchaseDate := purchase.PurchaseDate
		if req.PurchaseDate != nil {
			purchaseDate = *req.PurchaseDate
		}

		if err := purchase.UpdateDetails(vendor.ID, vendor.Name, purchaseDate, req.Notes); err != nil {
			return err
		}

		return repos.Purchases().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Delete removes a purchase and its items. The historical stock effect
// is kept; deleting a record does not rewrite inventory.
func (s *PurchaseService) Delete(ctx context.Context, orgID, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByIDForOrg(ctx, orgID, purchaseID)
	if err != nil {
		return err
	}

	return s.purchaseRepo.Delete(ctx, purchase.ID)
}

// resolveDocumentLine loads and validates the product and unit of one
// line item. The product row is locked for the rest of the transaction.
func resolveDocumentLine(ctx context.Context, repos inventory.TransactionalRepositories, orgID, productID, unitID uuid.UUID) (*catalog.Product, *catalog.Unit, error) {
	product, err := repos.Products().FindByIDForOrgLocked(ctx, orgID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewDomainError("INVALID_PRODUCT", "Product does not exist")
		}
		return nil, nil, err
	}

	unit, err := repos.Units().FindByIDForOrg(ctx, orgID, unitID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewDomainError("INVALID_UNIT", "Unit does not exist")
		}
		return nil, nil, err
	}

	if !product.AllowsUnit(unit.ID) {
		return nil, nil, shared.NewDomainError("UNIT_NOT_ALLOWED", "Unit is not allowed for this product")
	}

	return product, unit, nil
}
