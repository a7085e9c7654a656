package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db   *gorm.DB
	opts listOptions
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{
		db: db,
		opts: listOptions{
			searchColumns: []string{"invoice_number", "client_name"},
			sortFields:    saleSortFields,
			defaultOrder:  "sale_date DESC, invoice_number DESC",
		},
	}
}

// FindByID finds a sale with its line items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByIDForOrg finds a sale by ID within an organization
func (r *GormSaleRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("org_id = ? AND id = ?", orgID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByInvoiceNumber finds a sale by invoice number within an organization
func (r *GormSaleRepository) FindByInvoiceNumber(ctx context.Context, orgID uuid.UUID, invoiceNumber string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("org_id = ? AND invoice_number = ?", orgID, invoiceNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.opts.applyList(r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Items"), filter)
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindAllForOrg finds all sales of an organization matching the filter
func (r *GormSaleRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.opts.applyList(
		r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Items").Where("org_id = ?", orgID),
		filter,
	)
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Save creates or updates a sale with its line items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, sale); err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&trade.SaleItem{}).Error; err != nil {
			return err
		}
		if len(sale.Items) > 0 {
			if err := tx.Create(sale.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a sale; line items go with it via cascade
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(r.db.WithContext(ctx).Model(&trade.Sale{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOrg counts sales of an organization matching the filter
func (r *GormSaleRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.opts.applySearch(
		r.db.WithContext(ctx).Model(&trade.Sale{}).Where("org_id = ?", orgID),
		filter.Search,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateInvoiceNumber produces the next invoice number for the
// organization, format INV-YYYY-NNNNN
func (r *GormSaleRepository) GenerateInvoiceNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, &trade.Sale{}, "invoice_number", orgID, prefix)
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
