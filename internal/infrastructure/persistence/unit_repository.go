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
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db   *gorm.DB
	opts listOptions
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{
		db: db,
		opts: listOptions{
			searchColumns: []string{"name", "symbol"},
			sortFields:    unitSortFields,
			defaultOrder:  "name ASC",
		},
	}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	var unit catalog.Unit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByIDForOrg finds a unit by ID within an organization
func (r *GormUnitRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Unit, error) {
	var unit catalog.Unit
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByNameForOrg finds a unit by name within an organization
func (r *GormUnitRepository) FindByNameForOrg(ctx context.Context, orgID uuid.UUID, name string) (*catalog.Unit, error) {
	var unit catalog.Unit
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND name = ?", orgID, strings.TrimSpace(name)).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAll finds all units matching the filter
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, error) {
	var units []catalog.Unit
	query := r.opts.applyList(r.db.WithContext(ctx).Model(&catalog.Unit{}), filter)
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindAllForOrg finds all units of an organization matching the filter
func (r *GormUnitRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Unit, error) {
	var units []catalog.Unit
	query := r.opts.applyList(
		r.db.WithContext(ctx).Model(&catalog.Unit{}).Where("org_id = ?", orgID),
		filter,
	)
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save creates or updates a unit, rejecting stale updates
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	return saveVersioned(r.db.WithContext(ctx), unit)
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Unit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts units matching the filter
func (r *GormUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(r.db.WithContext(ctx).Model(&catalog.Unit{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOrg counts units of an organization matching the filter
func (r *GormUnitRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(
		r.db.WithContext(ctx).Model(&catalog.Unit{}).Where("org_id = ?", orgID),
		filter.Search,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsReferenced reports whether the unit is used as a base unit, by a
// product, in an allowed-unit set, or on any document line
func (r *GormUnitRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	checks := []struct {
		model  interface{}
		column string
	}{
		{&catalog.Unit{}, "base_unit_id"},
		{&catalog.Product{}, "base_unit_id"},
		{&catalog.AllowedUnit{}, "unit_id"},
		{&trade.PurchaseItem{}, "unit_id"},
		{&trade.SaleItem{}, "unit_id"},
		{&production.Input{}, "unit_id"},
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

var _ catalog.UnitRepository = (*GormUnitRepository)(nil)
