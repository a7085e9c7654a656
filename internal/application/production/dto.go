package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/production"
)

// CreateOrderRequest represents a request to create a production order.
// Order number, consumption math and stock effects are computed
// server-side.
type CreateOrderRequest struct {
	OutputProductID  uuid.UUID          `json:"output_product_id" binding:"required"`
	ProductionDate   *time.Time         `json:"production_date"`
	QuantityProduced decimal.Decimal    `json:"quantity_produced" binding:"required"`
	GoodQuantity     decimal.Decimal    `json:"good_quantity" binding:"required"`
	DamagedQuantity  decimal.Decimal    `json:"damaged_quantity"`
	Notes            string             `json:"notes"`
	Inputs           []CreateInputInput `json:"inputs" binding:"required,min=1,dive"`
	CreatedBy        *uuid.UUID         `json:"-"`
}

// CreateInputInput represents one raw material line of the order
type CreateInputInput struct {
	RawMaterialID   uuid.UUID       `json:"raw_material_id" binding:"required"`
	UnitID          uuid.UUID       `json:"unit_id" binding:"required"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity" binding:"required"`
	ActualUsed      decimal.Decimal `json:"actual_used" binding:"required"`
	Wastage         decimal.Decimal `json:"wastage"`
	QualityStatus   string          `json:"quality_status"`
}

// UpdateOrderRequest updates order metadata
type UpdateOrderRequest struct {
	ProductionDate *time.Time `json:"production_date"`
	Notes          string     `json:"notes"`
}

// ChangeStatusRequest moves the order to a new status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InputResponse represents a raw material line in responses
type InputResponse struct {
	ID               uuid.UUID       `json:"id"`
	RawMaterialID    uuid.UUID       `json:"raw_material_id"`
	RawMaterialName  string          `json:"raw_material_name"`
	UnitID           uuid.UUID       `json:"unit_id"`
	UnitName         string          `json:"unit_name"`
	PlannedQuantity  decimal.Decimal `json:"planned_quantity"`
	ActualUsed       decimal.Decimal `json:"actual_used"`
	Wastage          decimal.Decimal `json:"wastage"`
	QualityStatus    string          `json:"quality_status"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	BaseConsumed     decimal.Decimal `json:"base_consumed"`
}

// OrderResponse represents a production order in responses
type OrderResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrgID            uuid.UUID       `json:"org_id"`
	OrderNumber      string          `json:"order_number"`
	OutputProductID  uuid.UUID       `json:"output_product_id"`
	OutputName       string          `json:"output_name"`
	ProductionDate   time.Time       `json:"production_date"`
	Status           string          `json:"status"`
	QuantityProduced decimal.Decimal `json:"quantity_produced"`
	GoodQuantity     decimal.Decimal `json:"good_quantity"`
	DamagedQuantity  decimal.Decimal `json:"damaged_quantity"`
	Notes            string          `json:"notes,omitempty"`
	Inputs           []InputResponse `json:"inputs"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(order *production.Order) OrderResponse {
	inputs := make([]InputResponse, len(order.Inputs))
	for i := range order.Inputs {
		input := &order.Inputs[i]
		inputs[i] = InputResponse{
			ID:               input.ID,
			RawMaterialID:    input.RawMaterialID,
			RawMaterialName:  input.RawMaterialName,
			UnitID:           input.UnitID,
			UnitName:         input.UnitName,
			PlannedQuantity:  input.PlannedQuantity,
			ActualUsed:       input.ActualUsed,
			Wastage:          input.Wastage,
			QualityStatus:    string(input.QualityStatus),
			ConversionFactor: input.ConversionFactor,
			BaseConsumed:     input.BaseConsumed,
		}
	}

	return OrderResponse{
		ID:               order.ID,
		OrgID:            order.OrgID,
		OrderNumber:      order.OrderNumber,
		OutputProductID:  order.OutputProductID,
		OutputName:       order.OutputName,
		ProductionDate:   order.ProductionDate,
		Status:           string(order.Status),
		QuantityProduced: order.QuantityProduced,
		GoodQuantity:     order.GoodQuantity,
		DamagedQuantity:  order.DamagedQuantity,
		Notes:            order.Notes,
		Inputs:           inputs,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
		Version:          order.Version,
	}
}
