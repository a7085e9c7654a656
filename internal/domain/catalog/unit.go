package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/shared"
)

// MaxBaseChainDepth bounds base-unit chain resolution. A chain longer
// than this is treated as cyclic.
const MaxBaseChainDepth = 8

// Unit represents a unit of measure. A unit may reference a base unit
// together with a conversion factor; quantities expressed in this unit
// are multiplied by the factor to obtain base-unit quantities. A unit
// without a base unit is its own base (factor 1 semantics).
type Unit struct {
	shared.OrgAggregateRoot
	Name             string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_units_org_name,priority:2"`
	Symbol           string          `gorm:"type:varchar(20)"`
	BaseUnitID       *uuid.UUID      `gorm:"type:uuid;index"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(15,4);not null;default:1"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a standalone unit (its own base, factor 1)
func NewUnit(orgID uuid.UUID, name, symbol string) (*Unit, error) {
	if err := validateUnitName(name); err != nil {
		return nil, err
	}
	if err := validateUnitSymbol(symbol); err != nil {
		return nil, err
	}

	return &Unit{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
		Symbol:           strings.TrimSpace(symbol),
		ConversionFactor: decimal.NewFromInt(1),
	}, nil
}

// NewDerivedUnit creates a unit defined in terms of a base unit
func NewDerivedUnit(orgID uuid.UUID, name, symbol string, baseUnitID uuid.UUID, factor decimal.Decimal) (*Unit, error) {
	unit, err := NewUnit(orgID, name, symbol)
	if err != nil {
		return nil, err
	}
	if err := unit.SetBaseUnit(baseUnitID, factor); err != nil {
		return nil, err
	}
	return unit, nil
}

// Rename changes the unit name
func (u *Unit) Rename(name, symbol string) error {
	if err := validateUnitName(name); err != nil {
		return err
	}
	if err := validateUnitSymbol(symbol); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.Symbol = strings.TrimSpace(symbol)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetBaseUnit points the unit at a base unit with a conversion factor.
// Cycle detection across the chain is the responsibility of the service
// layer, which has repository access; self-reference is rejected here.
func (u *Unit) SetBaseUnit(baseUnitID uuid.UUID, factor decimal.Decimal) error {
	if baseUnitID == uuid.Nil {
		return shared.NewDomainError("INVALID_BASE_UNIT", "Base unit ID cannot be empty")
	}
	if baseUnitID == u.ID {
		return shared.ErrCyclicUnitChain
	}
	if err := validateConversionFactor(factor); err != nil {
		return err
	}

	u.BaseUnitID = &baseUnitID
	u.ConversionFactor = factor
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ClearBaseUnit makes the unit standalone again
func (u *Unit) ClearBaseUnit() {
	u.BaseUnitID = nil
	u.ConversionFactor = decimal.NewFromInt(1)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// HasBaseUnit returns true if the unit is derived from another unit
func (u *Unit) HasBaseUnit() bool {
	return u.BaseUnitID != nil && *u.BaseUnitID != uuid.Nil
}

// ConvertToBase converts a quantity in this unit to base-unit quantity
func (u *Unit) ConvertToBase(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(u.ConversionFactor)
}

func validateUnitName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot exceed 100 characters")
	}
	return nil
}

func validateUnitSymbol(symbol string) error {
	if len(strings.TrimSpace(symbol)) > 20 {
		return shared.NewDomainError("INVALID_UNIT_SYMBOL", "Unit symbol cannot exceed 20 characters")
	}
	return nil
}

func validateConversionFactor(factor decimal.Decimal) error {
	if factor.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_CONVERSION_FACTOR", "Conversion factor must be greater than zero")
	}
	return nil
}
