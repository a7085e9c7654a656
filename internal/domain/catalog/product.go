package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/shared"
)

// Product is a stockable item. Stock is always denominated in the
// product's base unit and is only mutated by trade and production
// documents, never set directly from client input.
type Product struct {
	shared.OrgAggregateRoot
	SKU           string          `gorm:"type:varchar(40);not null;uniqueIndex:idx_products_org_sku,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	BaseUnitID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Stock         decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0"`
	ReorderLevel  decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AllowedUnits  []AllowedUnit   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// AllowedUnit links a product to a unit it may be transacted in,
// besides its base unit.
type AllowedUnit struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnitID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (AllowedUnit) TableName() string {
	return "product_allowed_units"
}

// NewProduct creates a new product with a generated SKU and zero stock
func NewProduct(orgID uuid.UUID, name string, baseUnitID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if baseUnitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BASE_UNIT", "Product base unit is required")
	}

	return &Product{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		SKU:              GenerateSKU(),
		Name:             strings.TrimSpace(name),
		BaseUnitID:       baseUnitID,
		Stock:            decimal.Zero,
		ReorderLevel:     decimal.Zero,
		PurchasePrice:    decimal.Zero,
		SalePrice:        decimal.Zero,
	}, nil
}

// GenerateSKU produces a new unique stock keeping unit identifier
func GenerateSKU() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "SKU-" + raw[:12]
}

// Update changes name and description
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices updates purchase and sale prices
func (p *Product) SetPrices(purchasePrice, salePrice decimal.Decimal) error {
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetReorderLevel updates the reorder threshold
func (p *Product) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddStock increases stock by a base-unit quantity
func (p *Product) AddStock(baseQuantity decimal.Decimal) error {
	if baseQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock adjustment must be positive")
	}

	p.Stock = p.Stock.Add(baseQuantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveStock decreases stock by a base-unit quantity. The stock is
// never allowed to go negative.
func (p *Product) RemoveStock(baseQuantity decimal.Decimal) error {
	if baseQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock adjustment must be positive")
	}
	if p.Stock.LessThan(baseQuantity) {
		return shared.ErrInsufficientStock
	}

	p.Stock = p.Stock.Sub(baseQuantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsBelowReorderLevel returns true if stock has fallen under the threshold
func (p *Product) IsBelowReorderLevel() bool {
	if p.ReorderLevel.IsZero() {
		return false
	}
	return p.Stock.LessThan(p.ReorderLevel)
}

// SetAllowedUnits replaces the set of allowed transaction units
func (p *Product) SetAllowedUnits(unitIDs []uuid.UUID) {
	allowed := make([]AllowedUnit, 0, len(unitIDs))
	seen := make(map[uuid.UUID]struct{}, len(unitIDs))
	for _, unitID := range unitIDs {
		if unitID == uuid.Nil {
			continue
		}
		if _, ok := seen[unitID]; ok {
			continue
		}
		seen[unitID] = struct{}{}
		allowed = append(allowed, AllowedUnit{
			ProductID: p.ID,
			UnitID:    unitID,
			OrgID:     p.OrgID,
		})
	}

	p.AllowedUnits = allowed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AllowsUnit reports whether the unit may be used on documents for this
// product. The base unit is always allowed; an empty allowed set allows
// any unit of the organization.
func (p *Product) AllowsUnit(unitID uuid.UUID) bool {
	if unitID == p.BaseUnitID {
		return true
	}
	if len(p.AllowedUnits) == 0 {
		return true
	}
	for _, au := range p.AllowedUnits {
		if au.UnitID == unitID {
			return true
		}
	}
	return false
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
