package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/production"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db   *gorm.DB
	opts listOptions
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{
		db: db,
		opts: listOptions{
			searchColumns: []string{"name", "sku"},
			sortFields:    productSortFields,
			defaultOrder:  "name ASC",
		},
	}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("AllowedUnits").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForOrg finds a product by ID within an organization
func (r *GormProductRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("AllowedUnits").
		Where("org_id = ? AND id = ?", orgID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForOrgLocked loads a product row with SELECT ... FOR UPDATE.
// Only meaningful inside a transaction.
func (r *GormProductRepository) FindByIDForOrgLocked(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("AllowedUnits").
		Where("org_id = ? AND id = ?", orgID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKUForOrg finds a product by SKU within an organization
func (r *GormProductRepository) FindBySKUForOrg(ctx context.Context, orgID uuid.UUID, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("AllowedUnits").
		Where("org_id = ? AND sku = ?", orgID, strings.ToUpper(strings.TrimSpace(sku))).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.opts.applyList(r.db.WithContext(ctx).Model(&catalog.Product{}).Preload("AllowedUnits"), filter)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllForOrg finds all products of an organization matching the filter
func (r *GormProductRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.opts.applyList(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Preload("AllowedUnits").Where("org_id = ?", orgID),
		filter,
	)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBelowReorderLevel finds products whose stock fell under their
// reorder threshold
func (r *GormProductRepository) FindBelowReorderLevel(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.opts.applyList(
		r.db.WithContext(ctx).Model(&catalog.Product{}).
			Preload("AllowedUnits").
			Where("org_id = ? AND reorder_level > 0 AND stock < reorder_level", orgID),
		filter,
	)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product and replaces its allowed-unit set.
// Updates are rejected with ErrConcurrencyConflict when the row changed
// since the product was loaded.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, product); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.AllowedUnit{}).Error; err != nil {
			return err
		}
		if len(product.AllowedUnits) > 0 {
			if err := tx.Create(product.AllowedUnits).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a product; allowed units go with it via cascade
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(r.db.WithContext(ctx).Model(&catalog.Product{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOrg counts products of an organization matching the filter
func (r *GormProductRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("org_id = ?", orgID),
		filter.Search,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsReferenced reports whether the product appears on any document
func (r *GormProductRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	checks := []struct {
		model  interface{}
		column string
	}{
		{&trade.PurchaseItem{}, "product_id"},
		{&trade.SaleItem{}, "product_id"},
		{&production.Input{}, "raw_material_id"},
		{&production.Order{}, "output_product_id"},
	}

	for _, check := range checks {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(check.model).
			Where(check.column+" = ?", id).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
