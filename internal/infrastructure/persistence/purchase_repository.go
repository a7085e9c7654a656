package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db   *gorm.DB
	opts listOptions
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{
		db: db,
		opts: listOptions{
			searchColumns: []string{"receipt_number", "vendor_name"},
			sortFields:    purchaseSortFields,
			defaultOrder:  "purchase_date DESC, receipt_number DESC",
		},
	}
}

// FindByID finds a purchase with its line items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByIDForOrg finds a purchase by ID within an organization
func (r *GormPurchaseRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("org_id = ? AND id = ?", orgID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByReceiptNumber finds a purchase by receipt number within an organization
func (r *GormPurchaseRepository) FindByReceiptNumber(ctx context.Context, orgID uuid.UUID, receiptNumber string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("org_id = ? AND receipt_number = ?", orgID, receiptNumber).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.opts.applyList(r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Items"), filter)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindAllForOrg finds all purchases of an organization matching the filter
func (r *GormPurchaseRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.opts.applyList(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Items").Where("org_id = ?", orgID),
		filter,
	)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase with its line items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, purchase); err != nil {
			return err
		}
		if err := tx.Where("purchase_id = ?", purchase.ID).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		if len(purchase.Items) > 0 {
			if err := tx.Create(purchase.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a purchase; line items go with it via cascade
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(r.db.WithContext(ctx).Model(&trade.Purchase{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOrg counts purchases of an organization matching the filter
func (r *GormPurchaseRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("org_id = ?", orgID),
		filter.Search,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateReceiptNumber produces the next receipt number for the
// organization, format RC-YYYY-NNNNN
func (r *GormPurchaseRepository) GenerateReceiptNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("RC-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, &trade.Purchase{}, "receipt_number", orgID, prefix)
}

// nextDocumentNumber finds the highest numbered document with the
// given prefix and returns prefix plus the next sequence, zero padded
// to five digits. Callers run this inside the creating transaction so
// concurrent writers are serialized by the unique index.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, column string, orgID uuid.UUID, prefix string) (string, error) {
	var last string
	err := db.WithContext(ctx).
		Model(model).
		Select(column).
		Where("org_id = ? AND "+column+" LIKE ?", orgID, prefix+"%").
		Order(column + " DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if last != "" {
		parts := strings.Split(last, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
