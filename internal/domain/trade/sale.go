package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/shared"
)

// SaleItem represents a line item on a sale. BaseQuantity is the
// converted base-unit quantity debited from product stock.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
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
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a new sale line item
func NewSaleItem(saleID, productID uuid.UUID, productName string, unitID uuid.UUID, unitName string, quantity, unitPrice, conversionFactor decimal.Decimal) (*SaleItem, error) {
	if err := validateLineItem(productID, unitID, quantity, unitPrice, conversionFactor); err != nil {
		return nil, err
	}

	now := time.Now()
	return &SaleItem{
		ID:               uuid.New(),
		SaleID:           saleID,
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

// Sale is a goods-outward document. Creating it decreases product stock
// by each item's base quantity; a sale that would drive any stock
// negative is rejected as a whole.
type Sale struct {
	shared.OrgAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_org_invoice,priority:2"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientName    string          `gorm:"type:varchar(200);not null"`
	SaleDate      time.Time       `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes         string          `gorm:"type:text"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale document without items
func NewSale(orgID uuid.UUID, invoiceNumber string, clientID uuid.UUID, clientName string, saleDate time.Time) (*Sale, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	return &Sale{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		InvoiceNumber:    invoiceNumber,
		ClientID:         clientID,
		ClientName:       clientName,
		SaleDate:         saleDate,
		Total:            decimal.Zero,
		Items:            make([]SaleItem, 0),
	}, nil
}

// AddItem appends a line item and recalculates the total
func (s *Sale) AddItem(productID uuid.UUID, productName string, unitID uuid.UUID, unitName string, quantity, unitPrice, conversionFactor decimal.Decimal) (*SaleItem, error) {
	item, err := NewSaleItem(s.ID, productID, productName, unitID, unitName, quantity, unitPrice, conversionFactor)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return item, nil
}

// UpdateDetails changes the mutable metadata of the document
func (s *Sale) UpdateDetails(clientID uuid.UUID, clientName string, saleDate time.Time, notes string) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if saleDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Sale date cannot be empty")
	}

	s.ClientID = clientID
	s.ClientName = clientName
	s.SaleDate = saleDate
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// HasItems returns true if the document carries at least one line item
func (s *Sale) HasItems() bool {
	return len(s.Items) > 0
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal)
	}
	s.Total = total.Round(2)
}
