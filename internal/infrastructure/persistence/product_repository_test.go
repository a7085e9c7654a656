package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/partner"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_Save_RejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	orgID := uuid.New()
	product := seedProduct(t, db, orgID, "10")
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	first, err := repo.FindByIDForOrg(ctx, orgID, product.ID)
	require.NoError(t, err)
	second, err := repo.FindByIDForOrg(ctx, orgID, product.ID)
	require.NoError(t, err)

	require.NoError(t, first.SetPrices(decimal.RequireFromString("4.00"), decimal.RequireFromString("6.50")))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.SetReorderLevel(decimal.RequireFromString("3")))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	// The first writer's update survives untouched.
	reloaded, err := repo.FindByIDForOrg(ctx, orgID, product.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.SalePrice.Equal(decimal.RequireFromString("6.50")), "sale price should be 6.50, got %s", reloaded.SalePrice)
	assert.True(t, reloaded.ReorderLevel.IsZero())
}

func TestGormProductRepository_Save_SequentialUpdates(t *testing.T) {
	db := newTestDB(t)
	orgID := uuid.New()
	product := seedProduct(t, db, orgID, "10")
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	loaded, err := repo.FindByIDForOrg(ctx, orgID, product.ID)
	require.NoError(t, err)

	// Several domain mutations between load and save are fine; only a
	// concurrent writer invalidates the aggregate.
	require.NoError(t, loaded.Update("Steel Rod", "Cold rolled"))
	require.NoError(t, loaded.SetReorderLevel(decimal.RequireFromString("2")))
	require.NoError(t, repo.Save(ctx, loaded))

	// The saved aggregate stays usable without a reload.
	require.NoError(t, loaded.SetReorderLevel(decimal.RequireFromString("5")))
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByIDForOrg(ctx, orgID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cold rolled", reloaded.Description)
	assert.True(t, reloaded.ReorderLevel.Equal(decimal.RequireFromString("5")))
}

func TestGormVendorRepository_Save_RejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	orgID := uuid.New()
	ctx := context.Background()
	repo := NewGormVendorRepository(db)

	vendor, err := partner.NewVendor(orgID, "Acme Metals")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vendor))

	first, err := repo.FindByIDForOrg(ctx, orgID, vendor.ID)
	require.NoError(t, err)
	second, err := repo.FindByIDForOrg(ctx, orgID, vendor.ID)
	require.NoError(t, err)

	require.NoError(t, first.Update("Acme Metals East", "", "", "", "", "", ""))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.Update("Acme Metals West", "", "", "", "", "", ""))
	assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrConcurrencyConflict)

	reloaded, err := repo.FindByIDForOrg(ctx, orgID, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Metals East", reloaded.Name)
}
