package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/shared"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	unitRepo    catalog.UnitRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, unitRepo catalog.UnitRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
	}
}

// Create creates a new product with a generated SKU and zero stock
func (s *ProductService) Create(ctx context.Context, orgID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}

	if _, err := s.unitRepo.FindByIDForOrg(ctx, orgID, req.BaseUnitID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_BASE_UNIT", "Base unit does not exist")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(orgID, req.Name, req.BaseUnitID)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.CreatedBy != nil {
		product.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.applyOptionalFields(product, req.ReorderLevel, req.PurchasePrice, req.SalePrice); err != nil {
		return nil, err
	}

	if len(req.AllowedUnits) > 0 {
		if err := s.validateUnits(ctx, orgID, req.AllowedUnits); err != nil {
			return nil, err
		}
		product.SetAllowedUnits(req.AllowedUnits)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, orgID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOrg(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products of an organization with pagination
func (s *ProductService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListBelowReorderLevel retrieves products whose stock fell under the
// reorder threshold
func (s *ProductService) ListBelowReorderLevel(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBelowReorderLevel(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// Update changes product details. SKU and stock are immutable here.
func (s *ProductService) Update(ctx context.Context, orgID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOrg(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.applyOptionalFields(product, req.ReorderLevel, req.PurchasePrice, req.SalePrice); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetAllowedUnits replaces the product's allowed transaction units
func (s *ProductService) SetAllowedUnits(ctx context.Context, orgID, productID uuid.UUID, req SetAllowedUnitsRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOrg(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}

	if len(req.UnitIDs) > 0 {
		if err := s.validateUnits(ctx, orgID, req.UnitIDs); err != nil {
			return nil, err
		}
	}
	product.SetAllowedUnits(req.UnitIDs)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product that no document references
func (s *ProductService) Delete(ctx context.Context, orgID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForOrg(ctx, orgID, productID)
	if err != nil {
		return err
	}

	referenced, err := s.productRepo.IsReferenced(ctx, product.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.ErrEntityInUse
	}

	return s.productRepo.Delete(ctx, product.ID)
}

func (s *ProductService) applyOptionalFields(product *catalog.Product, reorderLevel, purchasePrice, salePrice *decimal.Decimal) error {
	if reorderLevel != nil {
		if err := product.SetReorderLevel(*reorderLevel); err != nil {
			return err
		}
	}
	if purchasePrice != nil || salePrice != nil {
		pp := product.PurchasePrice
		sp := product.SalePrice
		if purchasePrice != nil {
			pp = *purchasePrice
		}
		if salePrice != nil {
			sp = *salePrice
		}
		if err := product.SetPrices(pp, sp); err != nil {
			return err
		}
	}
	return nil
}

// validateUnits checks that every unit ID belongs to the organization
func (s *ProductService) validateUnits(ctx context.Context, orgID uuid.UUID, unitIDs []uuid.UUID) error {
	for _, unitID := range unitIDs {
		if _, err := s.unitRepo.FindByIDForOrg(ctx, orgID, unitID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_UNIT", "Allowed unit does not exist")
			}
			return err
		}
	}
	return nil
}
