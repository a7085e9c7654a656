package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	product, err := NewProduct(uuid.New(), "Flour", uuid.New())
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with generated SKU and zero stock", func(t *testing.T) {
		product := createTestProduct(t)

		assert.True(t, strings.HasPrefix(product.SKU, "SKU-"))
		assert.True(t, product.Stock.IsZero())
	})

	t.Run("generates distinct SKUs", func(t *testing.T) {
		a := createTestProduct(t)
		b := createTestProduct(t)
		assert.NotEqual(t, a.SKU, b.SKU)
	})

	t.Run("rejects missing base unit", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Flour", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestProduct_Stock(t *testing.T) {
	t.Run("add then remove", func(t *testing.T) {
		product := createTestProduct(t)

		require.NoError(t, product.AddStock(decimal.NewFromInt(10)))
		require.NoError(t, product.RemoveStock(decimal.NewFromInt(4)))
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(6)), "stock %s", product.Stock)
	})

	t.Run("remove beyond stock fails", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.AddStock(decimal.NewFromInt(3)))

		err := product.RemoveStock(decimal.NewFromInt(5))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(3)), "stock unchanged")
	})

	t.Run("rejects non-positive adjustments", func(t *testing.T) {
		product := createTestProduct(t)

		assert.Error(t, product.AddStock(decimal.Zero))
		assert.Error(t, product.RemoveStock(decimal.NewFromInt(-1)))
	})

	t.Run("fractional base quantities", func(t *testing.T) {
		product := createTestProduct(t)

		require.NoError(t, product.AddStock(decimal.RequireFromString("0.2500")))
		require.NoError(t, product.AddStock(decimal.RequireFromString("0.7500")))
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(1)))
	})
}

func TestProduct_IsBelowReorderLevel(t *testing.T) {
	product := createTestProduct(t)
	require.NoError(t, product.SetReorderLevel(decimal.NewFromInt(5)))
	require.NoError(t, product.AddStock(decimal.NewFromInt(3)))

	assert.True(t, product.IsBelowReorderLevel())

	require.NoError(t, product.AddStock(decimal.NewFromInt(10)))
	assert.False(t, product.IsBelowReorderLevel())
}

func TestProduct_AllowsUnit(t *testing.T) {
	t.Run("base unit always allowed", func(t *testing.T) {
		product := createTestProduct(t)
		product.SetAllowedUnits([]uuid.UUID{uuid.New()})

		assert.True(t, product.AllowsUnit(product.BaseUnitID))
	})

	t.Run("empty allowed set permits any unit", func(t *testing.T) {
		product := createTestProduct(t)
		assert.True(t, product.AllowsUnit(uuid.New()))
	})

	t.Run("restricted set rejects others", func(t *testing.T) {
		product := createTestProduct(t)
		allowed := uuid.New()
		product.SetAllowedUnits([]uuid.UUID{allowed})

		assert.True(t, product.AllowsUnit(allowed))
		assert.False(t, product.AllowsUnit(uuid.New()))
	})

	t.Run("deduplicates unit ids", func(t *testing.T) {
		product := createTestProduct(t)
		unitID := uuid.New()
		product.SetAllowedUnits([]uuid.UUID{unitID, unitID, uuid.Nil})

		assert.Len(t, product.AllowedUnits, 1)
	})
}
