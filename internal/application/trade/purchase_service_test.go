package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/application/inventory"
	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/partner"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stockyard/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseRepository is a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) FindByReceiptNumber(ctx context.Context, orgID uuid.UUID, receiptNumber string) (*trade.Purchase, error) {
	args := m.Called(ctx, orgID, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) GenerateReceiptNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
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

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestOrgID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestCatalog(orgID uuid.UUID) (*catalog.Unit, *catalog.Unit, *catalog.Product) {
	kg, _ := catalog.NewUnit(orgID, "Kilogram", "kg")
	gram, _ := catalog.NewDerivedUnit(orgID, "Gram", "g", kg.ID, decimal.RequireFromString("0.001"))
	product, _ := catalog.NewProduct(orgID, "Flour", kg.ID)
	return kg, gram, product
}

func TestPurchaseService_Create_Success(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	vendorRepo := new(MockVendorRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, vendorRepo, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, gram, product := newTestCatalog(orgID)
	vendor, _ := partner.NewVendor(orgID, "Acme Mills")

	vendorRepo.On("FindByIDForOrg", ctx, orgID, vendor.ID).Return(vendor, nil)
	purchaseRepo.On("GenerateReceiptNumber", ctx, orgID).Return("RC-2025-00001", nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, product.ID).Return(product, nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, kg.ID).Return(kg, nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, gram.ID).Return(gram, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
	purchaseRepo.On("Save", ctx, mock.AnythingOfType("*trade.Purchase")).Return(nil)

	req := CreatePurchaseRequest{
		VendorID: vendor.ID,
		Items: []CreateDocumentItemInput{
			{ProductID: product.ID, UnitID: kg.ID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("3.50")},
			{ProductID: product.ID, UnitID: gram.ID, Quantity: decimal.NewFromInt(500), UnitPrice: decimal.RequireFromString("0.02")},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "RC-2025-00001", result.ReceiptNumber)
	assert.Equal(t, "Acme Mills", result.VendorName)
	assert.Len(t, result.Items, 2)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("17.00")), "total = %s", result.Total)
	assert.True(t, result.Items[1].BaseQuantity.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, product.Stock.Equal(decimal.RequireFromString("2.5")), "stock = %s", product.Stock)
	purchaseRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestPurchaseService_Create_EmptyItems(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	result, err := service.Create(context.Background(), newTestOrgID(), CreatePurchaseRequest{VendorID: uuid.New()})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ITEMS", domainErr.Code)
}

func TestPurchaseService_Create_NoOrganization(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	_, err := service.Create(context.Background(), uuid.Nil, CreatePurchaseRequest{VendorID: uuid.New()})

	assert.ErrorIs(t, err, shared.ErrNoOrganization)
}

func TestPurchaseService_Create_VendorNotFound(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	vendorRepo := new(MockVendorRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, vendorRepo, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	vendorID := uuid.New()
	vendorRepo.On("FindByIDForOrg", ctx, orgID, vendorID).Return(nil, shared.ErrNotFound)

	req := CreatePurchaseRequest{
		VendorID: vendorID,
		Items: []CreateDocumentItemInput{
			{ProductID: uuid.New(), UnitID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_VENDOR", domainErr.Code)
	purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseService_Create_UnitNotAllowed(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	productRepo := new(MockProductRepository)
	unitRepo := new(MockUnitRepository)
	vendorRepo := new(MockVendorRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, unitRepo, vendorRepo, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	kg, gram, product := newTestCatalog(orgID)
	product.SetAllowedUnits([]uuid.UUID{kg.ID})
	vendor, _ := partner.NewVendor(orgID, "Acme Mills")

	vendorRepo.On("FindByIDForOrg", ctx, orgID, vendor.ID).Return(vendor, nil)
	purchaseRepo.On("GenerateReceiptNumber", ctx, orgID).Return("RC-2025-00002", nil)
	productRepo.On("FindByIDForOrgLocked", ctx, orgID, product.ID).Return(product, nil)
	unitRepo.On("FindByIDForOrg", ctx, orgID, gram.ID).Return(gram, nil)

	req := CreatePurchaseRequest{
		VendorID: vendor.ID,
		Items: []CreateDocumentItemInput{
			{ProductID: product.ID, UnitID: gram.ID, Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	result, err := service.Create(ctx, orgID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNIT_NOT_ALLOWED", domainErr.Code)
	purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseService_Update_Success(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	vendorRepo := new(MockVendorRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, vendorRepo, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	oldVendor, _ := partner.NewVendor(orgID, "Old Vendor")
	newVendor, _ := partner.NewVendor(orgID, "New Vendor")
	purchase, _ := trade.NewPurchase(orgID, "RC-2025-00003", oldVendor.ID, oldVendor.Name, time.Now())

	purchaseRepo.On("FindByIDForOrg", ctx, orgID, purchase.ID).Return(purchase, nil)
	vendorRepo.On("FindByIDForOrg", ctx, orgID, newVendor.ID).Return(newVendor, nil)
	purchaseRepo.On("Save", ctx, purchase).Return(nil)

	result, err := service.Update(ctx, orgID, purchase.ID, UpdatePurchaseRequest{
		VendorID: newVendor.ID,
		Notes:    "corrected vendor",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Vendor", result.VendorName)
	assert.Equal(t, "corrected vendor", result.Notes)
	purchaseRepo.AssertExpectations(t)
}

func TestPurchaseService_Delete_KeepsStockHistory(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	productRepo := new(MockProductRepository)
	scope := inventory.NewNoOpTransactionScope(productRepo, nil, nil, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	vendor, _ := partner.NewVendor(orgID, "Acme Mills")
	purchase, _ := trade.NewPurchase(orgID, "RC-2025-00004", vendor.ID, vendor.Name, time.Now())

	purchaseRepo.On("FindByIDForOrg", ctx, orgID, purchase.ID).Return(purchase, nil)
	purchaseRepo.On("Delete", ctx, purchase.ID).Return(nil)

	err := service.Delete(ctx, orgID, purchase.ID)

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	purchaseRepo.AssertExpectations(t)
}

func TestPurchaseService_GetByID_NotFound(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	scope := inventory.NewNoOpTransactionScope(nil, nil, nil, nil, purchaseRepo, nil, nil)
	service := NewPurchaseService(purchaseRepo, scope)

	ctx := context.Background()
	orgID := newTestOrgID()
	purchaseID := uuid.New()
	purchaseRepo.On("FindByIDForOrg", ctx, orgID, purchaseID).Return(nil, shared.ErrNotFound)

	result, err := service.GetByID(ctx, orgID, purchaseID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
