package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/trade"
)

// CreatePurchaseRequest represents a request to create a purchase.
// Receipt number, line totals, the document total and the stock effect
// are computed server-side; any client-supplied values are ignored.
type CreatePurchaseRequest struct {
	VendorID     uuid.UUID                 `json:"vendor_id" binding:"required"`
	PurchaseDate *time.Time                `json:"purchase_date"`
	Notes        string                    `json:"notes"`
	Items        []CreateDocumentItemInput `json:"items" binding:"required,min=1,dive"`
	CreatedBy    *uuid.UUID                `json:"-"`
}

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	ClientID  uuid.UUID                 `json:"client_id" binding:"required"`
	SaleDate  *time.Time                `json:"sale_date"`
	Notes     string                    `json:"notes"`
	Items     []CreateDocumentItemInput `json:"items" binding:"required,min=1,dive"`
	CreatedBy *uuid.UUID                `json:"-"`
}

// CreateDocumentItemInput represents one line item of a purchase or sale
type CreateDocumentItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	UnitID    uuid.UUID       `json:"unit_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdatePurchaseRequest updates document metadata. Items and total are
// immutable after creation.
type UpdatePurchaseRequest struct {
	VendorID     uuid.UUID  `json:"vendor_id" binding:"required"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Notes        string     `json:"notes"`
}

// UpdateSaleRequest updates document metadata
type UpdateSaleRequest struct {
	ClientID uuid.UUID  `json:"client_id" binding:"required"`
	SaleDate *time.Time `json:"sale_date"`
	Notes    string     `json:"notes"`
}

// DocumentItemResponse represents a line item in responses
type DocumentItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	UnitID           uuid.UUID       `json:"unit_id"`
	UnitName         string          `json:"unit_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	BaseQuantity     decimal.Decimal `json:"base_quantity"`
}

// PurchaseResponse represents a purchase in responses
type PurchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	OrgID         uuid.UUID              `json:"org_id"`
	ReceiptNumber string                 `json:"receipt_number"`
	VendorID      uuid.UUID              `json:"vendor_id"`
	VendorName    string                 `json:"vendor_name"`
	PurchaseDate  time.Time              `json:"purchase_date"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []DocumentItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Version       int                    `json:"version"`
}

// SaleResponse represents a sale in responses
type SaleResponse struct {
	ID            uuid.UUID              `json:"id"`
	OrgID         uuid.UUID              `json:"org_id"`
	InvoiceNumber string                 `json:"invoice_number"`
	ClientID      uuid.UUID              `json:"client_id"`
	ClientName    string                 `json:"client_name"`
	SaleDate      time.Time              `json:"sale_date"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []DocumentItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Version       int                    `json:"version"`
}

// ToPurchaseResponse converts a domain purchase to its response form
func ToPurchaseResponse(purchase *trade.Purchase) PurchaseResponse {
	items := make([]DocumentItemResponse, len(purchase.Items))
	for i := range purchase.Items {
		item := &purchase.Items[i]
		items[i] = DocumentItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			UnitID:           item.UnitID,
			UnitName:         item.UnitName,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			LineTotal:        item.LineTotal,
			ConversionFactor: item.ConversionFactor,
			BaseQuantity:     item.BaseQuantity,
		}
	}

	return PurchaseResponse{
		ID:            purchase.ID,
		OrgID:         purchase.OrgID,
		ReceiptNumber: purchase.ReceiptNumber,
		VendorID:      purchase.VendorID,
		VendorName:    purchase.VendorName,
		PurchaseDate:  purchase.PurchaseDate,
		Total:         purchase.Total,
		Notes:         purchase.Notes,
		Items:         items,
		CreatedAt:     purchase.CreatedAt,
		UpdatedAt:     purchase.UpdatedAt,
		Version:       purchase.Version,
	}
}

// ToSaleResponse converts a domain sale to its response form
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	items := make([]DocumentItemResponse, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		items[i] = DocumentItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			UnitID:           item.UnitID,
			UnitName:         item.UnitName,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			LineTotal:        item.LineTotal,
			ConversionFactor: item.ConversionFactor,
			BaseQuantity:     item.BaseQuantity,
		}
	}

	return SaleResponse{
		ID:            sale.ID,
		OrgID:         sale.OrgID,
		InvoiceNumber: sale.InvoiceNumber,
		ClientID:      sale.ClientID,
		ClientName:    sale.ClientName,
		SaleDate:      sale.SaleDate,
		Total:         sale.Total,
		Notes:         sale.Notes,
		Items:         items,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
		Version:       sale.Version,
	}
}
