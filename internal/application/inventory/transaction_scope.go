package inventory

import (
	"context"

	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/partner"
	"github.com/stockyard/backend/internal/domain/production"
	"github.com/stockyard/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// stock-mutating document touches. When a function is executed within a
// transaction scope, all repository operations are part of the same
// database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories used by
// document creation within a transaction. All repositories returned
// share the same underlying database transaction.
//
// Line items are child entities of their documents and are persisted
// via GORM association handling when the aggregate root is saved; they
// have no independent repository access.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Units returns the unit repository scoped to the current transaction
	Units() catalog.UnitRepository
	// Vendors returns the vendor repository scoped to the current transaction
	Vendors() partner.VendorRepository
	// Clients returns the client repository scoped to the current transaction
	Clients() partner.ClientRepository
	// Purchases returns the purchase repository scoped to the current transaction
	Purchases() trade.PurchaseRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() trade.SaleRepository
	// ProductionOrders returns the production order repository scoped to the current transaction
	ProductionOrders() production.OrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support
// is not required.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	unitRepo     catalog.UnitRepository
	vendorRepo   partner.VendorRepository
	clientRepo   partner.ClientRepository
	purchaseRepo trade.PurchaseRepository
	saleRepo     trade.SaleRepository
	orderRepo    production.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	unitRepo catalog.UnitRepository,
	vendorRepo partner.VendorRepository,
	clientRepo partner.ClientRepository,
	purchaseRepo trade.PurchaseRepository,
	saleRepo trade.SaleRepository,
	orderRepo production.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		vendorRepo:   vendorRepo,
		clientRepo:   clientRepo,
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		orderRepo:    orderRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.productRepo }

// Units returns the unit repository.
func (s *NoOpTransactionScope) Units() catalog.UnitRepository { return s.unitRepo }

// Vendors returns the vendor repository.
func (s *NoOpTransactionScope) Vendors() partner.VendorRepository { return s.vendorRepo }

// Clients returns the client repository.
func (s *NoOpTransactionScope) Clients() partner.ClientRepository { return s.clientRepo }

// Purchases returns the purchase repository.
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository { return s.purchaseRepo }

// Sales returns the sale repository.
func (s *NoOpTransactionScope) Sales() trade.SaleRepository { return s.saleRepo }

// ProductionOrders returns the production order repository.
func (s *NoOpTransactionScope) ProductionOrders() production.OrderRepository { return s.orderRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
