package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/shared"
)

// OrderStatus represents the status of a production order
type OrderStatus string

const (
	OrderStatusPlanned    OrderStatus = "planned"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlanned, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPlanned:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false
	}
	return false
}

// QualityStatus classifies how an input was consumed
type QualityStatus string

const (
	QualityStatusGood    QualityStatus = "good"
	QualityStatusDamaged QualityStatus = "damaged"
	QualityStatusExcess  QualityStatus = "excess"
	QualityStatusShort   QualityStatus = "short"
)

// IsValid checks if the status is a valid QualityStatus
func (q QualityStatus) IsValid() bool {
	switch q {
	case QualityStatusGood, QualityStatusDamaged, QualityStatusExcess, QualityStatusShort:
		return true
	}
	return false
}

// Input represents a raw material consumed by a production order.
// BaseConsumed = (ActualUsed + Wastage) × ConversionFactor is the
// base-unit quantity debited from the raw material's stock.
type Input struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialName  string          `gorm:"type:varchar(200);not null"`
	UnitID           uuid.UUID       `gorm:"type:uuid;not null"`
	UnitName         string          `gorm:"type:varchar(100);not null"`
	PlannedQuantity  decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	ActualUsed       decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	Wastage          decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0"`
	QualityStatus    QualityStatus   `gorm:"type:varchar(20);not null;default:'good'"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(15,4);not null;default:1"`
	BaseConsumed     decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Input) TableName() string {
	return "production_inputs"
}

// NewInput creates a production input line
func NewInput(orderID, rawMaterialID uuid.UUID, rawMaterialName string, unitID uuid.UUID, unitName string, planned, actualUsed, wastage, conversionFactor decimal.Decimal, quality QualityStatus) (*Input, error) {
	if rawMaterialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RAW_MATERIAL", "Raw material ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if planned.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Planned quantity must be positive")
	}
	if actualUsed.IsNegative() || wastage.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Actual usage and wastage cannot be negative")
	}
	if actualUsed.Add(wastage).IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Input must consume a positive quantity")
	}
	if conversionFactor.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_CONVERSION_FACTOR", "Conversion factor must be positive")
	}
	if !quality.IsValid() {
		return nil, shared.NewDomainError("INVALID_QUALITY_STATUS", "Quality status must be good, damaged, excess or short")
	}

	now := time.Now()
	return &Input{
		ID:               uuid.New(),
		OrderID:          orderID,
		RawMaterialID:    rawMaterialID,
		RawMaterialName:  rawMaterialName,
		UnitID:           unitID,
		UnitName:         unitName,
		PlannedQuantity:  planned,
		ActualUsed:       actualUsed,
		Wastage:          wastage,
		QualityStatus:    quality,
		ConversionFactor: conversionFactor,
		BaseConsumed:     actualUsed.Add(wastage).Mul(conversionFactor).Round(4),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Order is a manufacturing document: raw materials in, finished product
// out. Creating it debits each input's BaseConsumed from the raw
// material and credits GoodQuantity to the output product, atomically.
type Order struct {
	shared.OrgAggregateRoot
	OrderNumber      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_production_orders_org_number,priority:2"`
	OutputProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OutputName       string          `gorm:"type:varchar(200);not null"`
	ProductionDate   time.Time       `gorm:"not null;index"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'planned'"`
	QuantityProduced decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	GoodQuantity     decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	DamagedQuantity  decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0"`
	Notes            string          `gorm:"type:text"`
	Inputs           []Input         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "production_orders"
}

// NewOrder creates a new production order without inputs
func NewOrder(orgID uuid.UUID, orderNumber string, outputProductID uuid.UUID, outputName string, productionDate time.Time, produced, good, damaged decimal.Decimal) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if outputProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTPUT_PRODUCT", "Output product ID cannot be empty")
	}
	if produced.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Produced quantity must be positive")
	}
	if good.IsNegative() || damaged.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Good and damaged quantities cannot be negative")
	}
	if good.Add(damaged).GreaterThan(produced) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Good plus damaged cannot exceed produced quantity")
	}
	if productionDate.IsZero() {
		productionDate = time.Now()
	}

	return &Order{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		OrderNumber:      orderNumber,
		OutputProductID:  outputProductID,
		OutputName:       outputName,
		ProductionDate:   productionDate,
		Status:           OrderStatusPlanned,
		QuantityProduced: produced,
		GoodQuantity:     good,
		DamagedQuantity:  damaged,
		Inputs:           make([]Input, 0),
	}, nil
}

// AddInput appends a raw material line. The output product may not be
// consumed by its own order.
func (o *Order) AddInput(rawMaterialID uuid.UUID, rawMaterialName string, unitID uuid.UUID, unitName string, planned, actualUsed, wastage, conversionFactor decimal.Decimal, quality QualityStatus) (*Input, error) {
	if rawMaterialID == o.OutputProductID {
		return nil, shared.NewDomainError("INVALID_RAW_MATERIAL", "Output product cannot be one of its own inputs")
	}

	input, err := NewInput(o.ID, rawMaterialID, rawMaterialName, unitID, unitName, planned, actualUsed, wastage, conversionFactor, quality)
	if err != nil {
		return nil, err
	}

	o.Inputs = append(o.Inputs, *input)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return input, nil
}

// TransitionTo moves the order to a new status
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown production order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// UpdateDetails changes the mutable metadata of the order
func (o *Order) UpdateDetails(productionDate time.Time, notes string) error {
	if productionDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Production date cannot be empty")
	}

	o.ProductionDate = productionDate
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// HasInputs returns true if the order consumes at least one raw material
func (o *Order) HasInputs() bool {
	return len(o.Inputs) > 0
}

// TotalConsumed returns the sum of base-unit quantities consumed
func (o *Order) TotalConsumed() decimal.Decimal {
	total := decimal.Zero
	for _, input := range o.Inputs {
		total = total.Add(input.BaseConsumed)
	}
	return total
}
