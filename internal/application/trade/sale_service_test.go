package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/application/inventory"
	"github.com/stockyard/backend/internal/domain/partner"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) FindByInvoiceNumber(ctx context.Context, orgID uuid.UUID, invoiceNumber string) (*trade.Sale, error) {
	args := m.Called(ctx, orgID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) GenerateInvoiceNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	args := m.Called(ctx, orgID)
	return args.String(0), args.Error(1)
}

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestSaleService_Create_Success(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	clientRepo := new(MockClientRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, nil, clientRepo, nil, saleRepo, nil)
	service := NewSaleService(saleRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, _, product := newTestCatalog(orgID)
	product.Stock = decimal.NewFromInt(10)
	client, _ := partner.NewClient(orgID, "Corner Bakery")

	clientRepo.On("FindByIDForOrg", ctx, orgID, client.ID).Return(client, nil)
	saleRepo.On("GenerateInvoiceNumber", ctx, orgID).Return("INV-2025-00001", nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, product.ID).Return(product, nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
	saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

	req := CreateSaleRequest{
		ClientID: client.ID,
		Items: []CreateDocumentItemInput{
			{ProductID: product.ID, UnitID: kg.ID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.RequireFromString("6.25")},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "INV-2025-00001", result.InvoiceNumber)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("25.00")), "total = %s", result.Total)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(6)), "stock = %s", product.Stock)
	saleRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestSaleService_Create_InsufficientStock(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	clientRepo := new(MockClientRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, nil, clientRepo, nil, saleRepo, nil)
	service := NewSaleService(saleRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, _, product := newTestCatalog(orgID)
	product.Stock = decimal.NewFromInt(3)
	client, _ := partner.NewClient(orgID, "Corner Bakery")

	clientRepo.On("FindByIDForOrg", ctx, orgID, client.ID).Return(client, nil)
	saleRepo.On("GenerateInvoiceNumber", ctx, orgID).Return("INV-2025-00002", nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, product.ID).Return(product, nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)

	req := CreateSaleRequest{
		ClientID: client.ID,
		Items: []CreateDocumentItemInput{
			{ProductID: product.ID, UnitID: kg.ID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(5)},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaleService_Create_ClientNotFound(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	clientRepo := new(MockClientRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, clientRepo, nil, saleRepo, nil)
	service := NewSaleService(saleRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	clientID := uuid.New()
	clientRepo.On("FindByIDForOrg", ctx, orgID, clientID).Return(nil, shared.ErrNotFound)

	req := CreateSaleRequest{
		ClientID: clientID,
		Items: []CreateDocumentItemInput{
			{ProductID: uuid.New(), UnitID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
}

func TestSaleService_Create_EmptyItems(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, nil, nil, saleRepo, nil)
	service := NewSaleService(saleRepo, scope)

	result, err := service.Create(context.Background(), newTestOrgID(), CreateSaleRequest{ClientID: uuid.New()})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ITEMS", domainErr.Code)
}

func TestSaleService_Update_Success(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	clientRepo := new(MockClientRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, clientRepo, nil, saleRepo, nil)
	service := NewSaleService(saleRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	client, _ := partner.NewClient(orgID, "Corner Bakery")
	sale, _ := trade.NewSale(orgID, "INV-2025-00003", client.ID, client.Name, time.Now())
	newDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	saleRepo.On("FindByIDForOrg", ctx, orgID, sale.ID).Return(sale, nil)
	clientRepo.On("FindByIDForOrg", ctx, orgID, client.ID).Return(client, nil)
	saleRepo.On("Save", ctx, sale).Return(nil)

	result, err := service.Update(ctx, orgID, sale.ID, UpdateSaleRequest{
		ClientID: client.ID,
		SaleDate: &newDate,
		Notes:    "backdated",
	})

	assert.NoError(t, err)
	assert.True(t, result.SaleDate.Equal(newDate))
	assert.Equal(t, "backdated", result.Notes)
	saleRepo.AssertExpectations(t)
}

func TestSaleService_Delete_KeepsStockHistory(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	productRepo := new(MockProductRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, nil, nil, nil, nil, saleRepo, nil)
	service := NewSaleService(saleRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	client, _ := partner.NewClient(orgID, "Corner Bakery")
	sale, _ := trade.NewSale(orgID, "INV-2025-00004", client.ID, client.Name, time.Now())

	saleRepo.On("FindByIDForOrg", ctx, orgID, sale.ID).Return(sale, nil)
	saleRepo.On("Delete", ctx, sale.ID).Return(nil)

	err := service.Delete(ctx, orgID, sale.ID)

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	saleRepo.AssertExpectations(t)
}
