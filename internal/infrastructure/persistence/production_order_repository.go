package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/production"
	"github.com/stockyard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionOrderRepository implements production.OrderRepository using GORM
type GormProductionOrderRepository struct {
	db   *gorm.DB
	opts listOptions
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{
		db: db,
		opts: listOptions{
			searchColumns: []string{"order_number", "output_name"},
			sortFields:    productionOrderSortFields,
			defaultOrder:  "production_date DESC, order_number DESC",
		},
	}
}

// FindByID finds a production order with its inputs
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Order, error) {
	var order production.Order
	if err := r.db.WithContext(ctx).
		Preload("Inputs").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForOrg finds a production order by ID within an organization
func (r *GormProductionOrderRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*production.Order, error) {
	var order production.Order
	if err := r.db.WithContext(ctx).
		Preload("Inputs").
		Where("org_id = ? AND id = ?", orgID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds a production order by number within an organization
func (r *GormProductionOrderRepository) FindByOrderNumber(ctx context.Context, orgID uuid.UUID, orderNumber string) (*production.Order, error) {
	var order production.Order
	if err := r.db.WithContext(ctx).
		Preload("Inputs").
		Where("org_id = ? AND order_number = ?", orgID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all production orders matching the filter
func (r *GormProductionOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Order, error) {
	var orders []production.Order
	query := r.opts.applyList(r.db.WithContext(ctx).Model(&production.Order{}).Preload("Inputs"), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForOrg finds all production orders of an organization matching the filter
func (r *GormProductionOrderRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]production.Order, error) {
	var orders []production.Order
	query := r.opts.applyList(
		r.db.WithContext(ctx).Model(&production.Order{}).Preload("Inputs").Where("org_id = ?", orgID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a production order with its inputs
func (r *GormProductionOrderRepository) Save(ctx context.Context, order *production.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, order); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&production.Input{}).Error; err != nil {
			return err
		}
		if len(order.Inputs) > 0 {
			if err := tx.Create(order.Inputs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a production order; inputs go with it via cascade
func (r *GormProductionOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&production.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts production orders matching the filter
func (r *GormProductionOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(r.db.WithContext(ctx).Model(&production.Order{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOrg counts production orders of an organization matching the filter
func (r *GormProductionOrderRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(
		r.db.WithContext(ctx).Model(&production.Order{}).Where("org_id = ?", orgID),
		filter.Search,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber produces the next order number for the
// organization, format MO-YYYY-NNNNN
func (r *GormProductionOrderRepository) GenerateOrderNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("MO-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, &production.Order{}, "order_number", orgID, prefix)
}

var _ production.OrderRepository = (*GormProductionOrderRepository)(nil)
