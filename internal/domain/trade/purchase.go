package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/shared"
)

// PurchaseItem represents a line item on a purchase. Quantity is
// expressed in the line's unit; BaseQuantity carries the converted
// base-unit quantity that was applied to product stock. Unit name and
// conversion factor are snapshots taken at document creation so later
// unit edits do not rewrite history.
type PurchaseItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	UnitID           uuid.UUID       `gorm:"type:uuid;not null"`
	UnitName         string          `gorm:"type:varchar(100);not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(15,4);not null;default:1"`
	BaseQuantity     decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a new purchase line item
func NewPurchaseItem(purchaseID, productID uuid.UUID, productName string, unitID uuid.UUID, unitName string, quantity, unitPrice, conversionFactor decimal.Decimal) (*PurchaseItem, error) {
	if err := validateLineItem(productID, unitID, quantity, unitPrice, conversionFactor); err != nil {
		return nil, err
	}

	now := time.Now()
	return &PurchaseItem{
		ID:               uuid.New(),
		PurchaseID:       purchaseID,
		ProductID:        productID,
		ProductName:      productName,
		UnitID:           unitID,
		UnitName:         unitName,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		LineTotal:        quantity.Mul(unitPrice).Round(2),
		ConversionFactor: conversionFactor,
		BaseQuantity:     quantity.Mul(conversionFactor).Round(4),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Purchase is a goods-inward document. Creating it increases product
// stock by each item's base quantity. Total and receipt number are
// computed server-side and never taken from the caller.
type Purchase struct {
	shared.OrgAggregateRoot
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchases_org_receipt,priority:2"`
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName    string          `gorm:"type:varchar(200);not null"`
	PurchaseDate  time.Time       `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes         string          `gorm:"type:text"`
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase document without items
func NewPurchase(orgID uuid.UUID, receiptNumber string, vendorID uuid.UUID, vendorName string, purchaseDate time.Time) (*Purchase, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &Purchase{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		ReceiptNumber:    receiptNumber,
		VendorID:         vendorID,
		VendorName:       vendorName,
		PurchaseDate:     purchaseDate,
		Total:            decimal.Zero,
		Items:            make([]PurchaseItem, 0),
	}, nil
}

// AddItem appends a line item and recalculates the total
func (p *Purchase) AddItem(productID uuid.UUID, productName string, unitID uuid.UUID, unitName string, quantity, unitPrice, conversionFactor decimal.Decimal) (*PurchaseItem, error) {
	item, err := NewPurchaseItem(p.ID, productID, productName, unitID, unitName, quantity, unitPrice, conversionFactor)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.recalculateTotal()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return item, nil
}

// UpdateDetails changes the mutable metadata of the document. Items,
// total and stock effects are fixed once the purchase exists.
func (p *Purchase) UpdateDetails(vendorID uuid.UUID, vendorName string, purchaseDate time.Time, notes string) error {
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if purchaseDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Purchase date cannot be empty")
	}

	p.VendorID = vendorID
	p.VendorName = vendorName
	p.PurchaseDate = purchaseDate
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasItems returns true if the document carries at least one line item
func (p *Purchase) HasItems() bool {
	return len(p.Items) > 0
}

func (p *Purchase) recalculateTotal() {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.LineTotal)
	}
	p.Total = total.Round(2)
}

func validateLineItem(productID, unitID uuid.UUID, quantity, unitPrice, conversionFactor decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if conversionFactor.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_CONVERSION_FACTOR", "Conversion factor must be positive")
	}
	return nil
}
