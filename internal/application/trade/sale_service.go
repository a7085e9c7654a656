package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/application/inventory"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
)

// SaleService handles sale business operations. A sale debits stock; if
// any line would drive a product's stock negative the whole document is
// rejected and nothing is persisted.
type SaleService struct {
	saleRepo trade.SaleRepository
	txScope  inventory.TransactionScope
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository, txScope inventory.TransactionScope) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		txScope:  txScope,
	}
}

// Create creates a sale with its items and applies the stock effect
func (s *SaleService) Create(ctx context.Context, orgID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ITEMS", "Sale must contain at least one item")
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	var sale *trade.Sale
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		client, err := repos.Clients().FindByIDForOrg(ctx, orgID, req.ClientID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CLIENT", "Client does not exist")
			}
			return err
		}

		invoiceNumber, err := repos.Sales().GenerateInvoiceNumber(ctx, orgID)
		if err != nil {
			return err
		}

		sale, err = trade.NewSale(orgID, invoiceNumber, client.ID, client.Name, saleDate)
		if err != nil {
			return err
		}
		sale.Notes = req.Notes
		if req.CreatedBy != nil {
			sale.SetCreatedBy(*req.CreatedBy)
		}

		for _, line := range req.Items {
			product, unit, err := resolveDocumentLine(ctx, repos, orgID, line.ProductID, line.UnitID)
			if err != nil {
				return err
			}

			item, err := sale.AddItem(product.ID, product.Name, unit.ID, unit.Name,
				line.Quantity, line.UnitPrice, unit.ConversionFactor)
			if err != nil {
				return err
			}

			if err := product.RemoveStock(item.BaseQuantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, orgID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForOrg(ctx, orgID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales of an organization with pagination
func (s *SaleService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	sales, err := s.saleRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes document metadata. Items, total and stock history are
// immutable once the sale exists.
func (s *SaleService) Update(ctx context.Context, orgID, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForOrg(ctx, orgID, saleID)
		if err != nil {
			return err
		}

		client, err := repos.Clients().FindByIDForOrg(ctx, orgID, req.ClientID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CLIENT", "Client does not exist")
			}
			return err
		}

		saleDate := sale.SaleDate
		if req.SaleDate != nil {
			saleDate = *req.SaleDate
		}

		if err := sale.UpdateDetails(client.ID, client.Name, saleDate, req.Notes); err != nil {
			return err
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete removes a sale and its items without rewriting stock history
func (s *SaleService) Delete(ctx context.Context, orgID, saleID uuid.UUID) error {
	sale, err := s.saleRepo.FindByIDForOrg(ctx, orgID, saleID)
	if err != nil {
		return err
	}

	return s.saleRepo.Delete(ctx, sale.ID)
}
