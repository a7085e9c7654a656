package production

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/application/inventory"
	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/production"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*production.Order, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]production.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]production.Order, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]production.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *production.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orgID uuid.UUID, orderNumber string) (*production.Order, error) {
	args := m.Called(ctx, orgID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Order), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	args := m.Called(ctx, orgID)
	return args.String(0), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySKUForOrg(ctx context.Context, orgID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, orgID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForOrgLocked(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBelowReorderLevel(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockUnitRepository is a mock implementation of UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Unit, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) FindByNameForOrg(ctx context.Context, orgID uuid.UUID, name string) (*catalog.Unit, error) {
	args := m.Called(ctx, orgID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestOrgID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

// newManufacturingFixture returns a kilogram unit, a flour raw material
// stocked at 10 kg and a bread output product with zero stock.
func newManufacturingFixture(orgID uuid.UUID) (*catalog.Unit, *catalog.Product, *catalog.Product) {
	kg, _ := catalog.NewUnit(orgID, "Kilogram", "kg")
	loaf, _ := catalog.NewUnit(orgID, "Loaf", "")
	flour, _ := catalog.NewProduct(orgID, "Flour", kg.ID)
	flour.Stock = decimal.NewFromInt(10)
	bread, _ := catalog.NewProduct(orgID, "Bread", loaf.ID)
	return kg, flour, bread
}

func TestOrderService_Create_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, flour, bread := newManufacturingFixture(orgID)

	productRepo.On("FindByIDForOrgLocked", ctx, orgID, bread.ID).Return(bread, nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, flour.ID).Return(flour, nil)
	orderRepo.On("GenerateOrderNumber", ctx, orgID).Return("MO-2025-00001", nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
	orderRepo.On("Save", ctx, mock.AnythingOfType("*production.Order")).Return(nil)

	req := CreateOrderRequest{
		OutputProductID:  bread.ID,
		QuantityProduced: decimal.NewFromInt(10),
		GoodQuantity:     decimal.NewFromInt(8),
		DamagedQuantity:  decimal.NewFromInt(2),
		Inputs: []CreateInputInput{
			{
				RawMaterialID:   flour.ID,
				UnitID:          kg.ID,
				PlannedQuantity: decimal.NewFromInt(5),
				ActualUsed:      decimal.NewFromInt(4),
				Wastage:         decimal.RequireFromString("0.5"),
			},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "MO-2025-00001", result.OrderNumber)
	assert.Equal(t, "planned", result.Status)
	assert.Len(t, result.Inputs, 1)
	assert.True(t, result.Inputs[0].BaseConsumed.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, "good", result.Inputs[0].QualityStatus)
	assert.True(t, flour.Stock.Equal(decimal.RequireFromString("5.5")), "flour stock = %s", flour.Stock)
	assert.True(t, bread.Stock.Equal(decimal.NewFromInt(8)), "bread stock = %s", bread.Stock)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestOrderService_Create_NoGoodYield(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, flour, bread := newManufacturingFixture(orgID)

	productRepo.On("FindByIDForOrgLocked", ctx, orgID, bread.ID).Return(bread, nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, flour.ID).Return(flour, nil)
	orderRepo.On("GenerateOrderNumber", ctx, orgID).Return("MO-2025-00002", nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
	orderRepo.On("Save", ctx, mock.AnythingOfType("*production.Order")).Return(nil)

	req := CreateOrderRequest{
		OutputProductID:  bread.ID,
		QuantityProduced: decimal.NewFromInt(5),
		GoodQuantity:     decimal.Zero,
		DamagedQuantity:  decimal.NewFromInt(5),
		Inputs: []CreateInputInput{
			{
				RawMaterialID:   flour.ID,
				UnitID:          kg.ID,
				PlannedQuantity: decimal.NewFromInt(3),
				ActualUsed:      decimal.NewFromInt(3),
				QualityStatus:   "damaged",
			},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.NoError(t, err)
	assert.True(t, bread.Stock.IsZero(), "a fully damaged batch must not credit the output")
	assert.Equal(t, "damaged", result.Inputs[0].QualityStatus)
	// Only the raw material was saved.
	productRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestOrderService_Create_InsufficientRawMaterial(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, flour, bread := newManufacturingFixture(orgID)
	flour.Stock = decimal.NewFromInt(2)

	productRepo.On("FindByIDForOrgLocked", ctx, orgID, bread.ID).Return(bread, nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, flour.ID).Return(flour, nil)
	orderRepo.On("GenerateOrderNumber", ctx, orgID).Return("MO-2025-00003", nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)

	req := CreateOrderRequest{
		OutputProductID:  bread.ID,
		QuantityProduced: decimal.NewFromInt(10),
		GoodQuantity:     decimal.NewFromInt(10),
		Inputs: []CreateInputInput{
			{
				RawMaterialID:   flour.ID,
				UnitID:          kg.ID,
				PlannedQuantity: decimal.NewFromInt(5),
				ActualUsed:      decimal.NewFromInt(5),
			},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Create_EmptyInputs(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	result, err := service.Create(context.Background(), newTestOrgID(), CreateOrderRequest{
		OutputProductID:  uuid.New(),
		QuantityProduced: decimal.NewFromInt(1),
		GoodQuantity:     decimal.NewFromInt(1),
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_INPUTS", domainErr.Code)
}

func TestOrderService_Create_OutputConsumedAsInput(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, _, bread := newManufacturingFixture(orgID)
	bread.Stock = decimal.NewFromInt(10)

	productRepo.On("FindByIDForOrgLocked", ctx, orgID, bread.ID).Return(bread, nil)
	orderRepo.On("GenerateOrderNumber", ctx, orgID).Return("MO-2025-00004", nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)

	req := CreateOrderRequest{
		OutputProductID:  bread.ID,
		QuantityProduced: decimal.NewFromInt(5),
		GoodQuantity:     decimal.NewFromInt(5),
		Inputs: []CreateInputInput{
			{
				RawMaterialID:   bread.ID,
				UnitID:          kg.ID,
				PlannedQuantity: decimal.NewFromInt(1),
				ActualUsed:      decimal.NewFromInt(1),
			},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RAW_MATERIAL", domainErr.Code)
}

func TestOrderService_ChangeStatus_Valid(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, nil, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	order, _ := production.NewOrder(orgID, "MO-2025-00005", uuid.New(), "Bread",
		time.Now(), decimal.NewFromInt(5), decimal.NewFromInt(5), decimal.Zero)

	orderRepo.On("FindByIDForOrg", ctx, orgID, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)

	result, err := service.ChangeStatus(ctx, orgID, order.ID, ChangeStatusRequest{Status: "in_progress"})

	assert.NoError(t, err)
	assert.Equal(t, "in_progress", result.Status)
	// Status changes never touch stock.
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_ChangeStatus_InvalidTransition(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, nil, nil, nil, orderRepo)
	service := NewOrderService(orderRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	order, _ := production.NewOrder(orgID, "MO-2025-00006", uuid.New(), "Bread",
		time.Now(), decimal.NewFromInt(5), decimal.NewFromInt(5), decimal.Zero)

	orderRepo.On("FindByIDForOrg", ctx, orgID, order.ID).Return(order, nil)

	result, err := service.ChangeStatus(ctx, orgID, order.ID, ChangeStatusRequest{Status: "completed"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
