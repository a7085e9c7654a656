package production

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/application/inventory"
	"github.com/stockyard/backend/internal/domain/production"
	"github.com/stockyard/backend/internal/domain/shared"
)

// OrderService handles production order business operations. Creating
// an order debits every raw material by its consumed base quantity
// (actual usage plus wastage, unit-converted) and credits the output
// product by the good quantity, all in one transaction.
type OrderService struct {
	orderRepo production.OrderRepository
	txScope   inventory.TransactionScope
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo production.OrderRepository, txScope inventory.TransactionScope) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// Create creates a production order and applies its stock effects
func (s *OrderService) Create(ctx context.Context, orgID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}
	if len(req.Inputs) == 0 {
		return nil, shared.NewDomainError("EMPTY_INPUTS", "Production order must consume at least one raw material")
	}

	productionDate := time.Now()
	if req.ProductionDate != nil {
		productionDate = *req.ProductionDate
	}

	var order *production.Order
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		output, err := repos.Products().FindByIDForOrgLocked(ctx, orgID, req.OutputProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_OUTPUT_PRODUCT", "Output product does not exist")
			}
			return err
		}

		orderNumber, err := repos.ProductionOrders().GenerateOrderNumber(ctx, orgID)
		if err != nil {
			return err
		}

		order, err = production.NewOrder(orgID, orderNumber, output.ID, output.Name,
			productionDate, req.QuantityProduced, req.GoodQuantity, req.DamagedQuantity)
		if err != nil {
			return err
		}
		order.Notes = req.Notes
		if req.CreatedBy != nil {
			order.SetCreatedBy(*req.CreatedBy)
		}

		for _, line := range req.Inputs {
			rawMaterial, err := repos.Products().FindByIDForOrgLocked(ctx, orgID, line.RawMaterialID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("INVALID_RAW_MATERIAL", "Raw material does not exist")
				}
				return err
			}

			unit, err := repos.Units().FindByIDForOrg(ctx, orgID, line.UnitID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("INVALID_UNIT", "Unit does not exist")
				}
				return err
			}
			if !rawMaterial.AllowsUnit(unit.ID) {
				return shared.NewDomainError("UNIT_NOT_ALLOWED", "Unit is not allowed for this raw material")
			}

			quality := production.QualityStatusGood
			if line.QualityStatus != "" {
				quality = production.QualityStatus(line.QualityStatus)
			}

			input, err := order.AddInput(rawMaterial.ID, rawMaterial.Name, unit.ID, unit.Name,
				line.PlannedQuantity, line.ActualUsed, line.Wastage, unit.ConversionFactor, quality)
			if err != nil {
				return err
			}

			if err := rawMaterial.RemoveStock(input.BaseConsumed); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, rawMaterial); err != nil {
				return err
			}
		}

		// Output is credited with the usable yield only.
		if order.GoodQuantity.IsPositive() {
			if err := output.AddStock(order.GoodQuantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, output); err != nil {
				return err
			}
		}

		return repos.ProductionOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a production order by ID
func (s *OrderService) GetByID(ctx context.Context, orgID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOrg(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves production orders of an organization with pagination
func (s *OrderService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes order metadata
func (s *OrderService) Update(ctx context.Context, orgID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOrg(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}

	productionDate := order.ProductionDate
	if req.ProductionDate != nil {
		productionDate = *req.ProductionDate
	}

	if err := order.UpdateDetails(productionDate, req.Notes); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ChangeStatus moves the order through its lifecycle. Stock effects are
// applied at creation; status is tracking metadata.
func (s *OrderService) ChangeStatus(ctx context.Context, orgID, orderID uuid.UUID, req ChangeStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOrg(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(production.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes a production order and its inputs without rewriting
// stock history
func (s *OrderService) Delete(ctx context.Context, orgID, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForOrg(ctx, orgID, orderID)
	if err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, order.ID)
}
