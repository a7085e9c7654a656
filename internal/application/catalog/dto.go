package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/catalog"
)

// CreateUnitRequest represents a request to create a unit
type CreateUnitRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=100"`
	Symbol           string           `json:"symbol" binding:"max=20"`
	BaseUnitID       *uuid.UUID       `json:"base_unit_id"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	CreatedBy        *uuid.UUID       `json:"-"`
}

// UpdateUnitRequest represents a request to update a unit
type UpdateUnitRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=100"`
	Symbol           string           `json:"symbol" binding:"max=20"`
	BaseUnitID       *uuid.UUID       `json:"base_unit_id"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
}

// UnitResponse represents a unit in responses
type UnitResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrgID            uuid.UUID       `json:"org_id"`
	Name             string          `json:"name"`
	Symbol           string          `json:"symbol,omitempty"`
	BaseUnitID       *uuid.UUID      `json:"base_unit_id,omitempty"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToUnitResponse converts a domain unit to its response form
func ToUnitResponse(unit *catalog.Unit) UnitResponse {
	return UnitResponse{
		ID:               unit.ID,
		OrgID:            unit.OrgID,
		Name:             unit.Name,
		Symbol:           unit.Symbol,
		BaseUnitID:       unit.BaseUnitID,
		ConversionFactor: unit.ConversionFactor,
		CreatedAt:        unit.CreatedAt,
		UpdatedAt:        unit.UpdatedAt,
		Version:          unit.Version,
	}
}

// CreateProductRequest represents a request to create a product. SKU
// and stock are server-controlled.
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description"`
	BaseUnitID    uuid.UUID        `json:"base_unit_id" binding:"required"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	AllowedUnits  []uuid.UUID      `json:"allowed_units"`
	CreatedBy     *uuid.UUID       `json:"-"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
}

// SetAllowedUnitsRequest replaces a product's allowed transaction units
type SetAllowedUnitsRequest struct {
	UnitIDs []uuid.UUID `json:"unit_ids" binding:"required"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrgID         uuid.UUID       `json:"org_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	BaseUnitID    uuid.UUID       `json:"base_unit_id"`
	Stock         decimal.Decimal `json:"stock"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	AllowedUnits  []uuid.UUID     `json:"allowed_units"`
	BelowReorder  bool            `json:"below_reorder"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(product *catalog.Product) ProductResponse {
	allowed := make([]uuid.UUID, len(product.AllowedUnits))
	for i, au := range product.AllowedUnits {
		allowed[i] = au.UnitID
	}

	return ProductResponse{
		ID:            product.ID,
		OrgID:         product.OrgID,
		SKU:           product.SKU,
		Name:          product.Name,
		Description:   product.Description,
		BaseUnitID:    product.BaseUnitID,
		Stock:         product.Stock,
		ReorderLevel:  product.ReorderLevel,
		PurchasePrice: product.PurchasePrice,
		SalePrice:     product.SalePrice,
		AllowedUnits:  allowed,
		BelowReorder:  product.IsBelowReorderLevel(),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
		Version:       product.Version,
	}
}
