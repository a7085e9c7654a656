package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPurchase(t *testing.T) *Purchase {
	orgID := uuid.New()
	vendorID := uuid.New()
	purchase, err := NewPurchase(orgID, "RC-2026-00001", vendorID, "Test Vendor", time.Now())
	require.NoError(t, err)
	return purchase
}

func TestNewPurchase(t *testing.T) {
	t.Run("creates purchase with valid fields", func(t *testing.T) {
		purchase := createTestPurchase(t)

		assert.NotEqual(t, uuid.Nil, purchase.ID)
		assert.Equal(t, "RC-2026-00001", purchase.ReceiptNumber)
		assert.True(t, purchase.Total.IsZero())
		assert.Empty(t, purchase.Items)
		assert.Equal(t, 1, purchase.Version)
	})

	t.Run("rejects empty receipt number", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "", uuid.New(), "Vendor", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil vendor", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "RC-2026-00001", uuid.Nil, "", time.Now())
		assert.Error(t, err)
	})
}

func TestPurchase_AddItem(t *testing.T) {
	t.Run("computes line total and base quantity", func(t *testing.T) {
		purchase := createTestPurchase(t)

		// 2000 grams at 5.00 each, gram -> kilogram factor 0.001
		item, err := purchase.AddItem(uuid.New(), "Flour", uuid.New(), "Gram",
			decimal.NewFromInt(2000), decimal.NewFromInt(5), decimal.NewFromFloat(0.001))
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(10000)), "line total %s", item.LineTotal)
		assert.True(t, item.BaseQuantity.Equal(decimal.NewFromInt(2)), "base quantity %s", item.BaseQuantity)
		assert.True(t, purchase.Total.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("accumulates total across items", func(t *testing.T) {
		purchase := createTestPurchase(t)

		_, err := purchase.AddItem(uuid.New(), "Flour", uuid.New(), "Kilogram",
			decimal.NewFromInt(3), decimal.RequireFromString("12.50"), decimal.NewFromInt(1))
		require.NoError(t, err)
		_, err = purchase.AddItem(uuid.New(), "Sugar", uuid.New(), "Kilogram",
			decimal.NewFromInt(2), decimal.RequireFromString("8.25"), decimal.NewFromInt(1))
		require.NoError(t, err)

		assert.True(t, purchase.Total.Equal(decimal.RequireFromString("54.00")), "total %s", purchase.Total)
		assert.True(t, purchase.HasItems())
	})

	t.Run("preserves decimal precision", func(t *testing.T) {
		purchase := createTestPurchase(t)

		_, err := purchase.AddItem(uuid.New(), "Oil", uuid.New(), "Litre",
			decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"), decimal.NewFromInt(1))
		require.NoError(t, err)

		assert.True(t, purchase.Total.Equal(decimal.RequireFromString("0.02")), "total %s", purchase.Total)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		purchase := createTestPurchase(t)

		_, err := purchase.AddItem(uuid.New(), "Flour", uuid.New(), "Gram",
			decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(1))
		assert.Error(t, err)
		assert.Empty(t, purchase.Items)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		purchase := createTestPurchase(t)

		_, err := purchase.AddItem(uuid.New(), "Flour", uuid.New(), "Gram",
			decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive conversion factor", func(t *testing.T) {
		purchase := createTestPurchase(t)

		_, err := purchase.AddItem(uuid.New(), "Flour", uuid.New(), "Gram",
			decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestPurchase_UpdateDetails(t *testing.T) {
	t.Run("updates metadata without touching totals", func(t *testing.T) {
		purchase := createTestPurchase(t)
		_, err := purchase.AddItem(uuid.New(), "Flour", uuid.New(), "Kilogram",
			decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(1))
		require.NoError(t, err)

		newVendor := uuid.New()
		date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, purchase.UpdateDetails(newVendor, "Other Vendor", date, "restock"))

		assert.Equal(t, newVendor, purchase.VendorID)
		assert.Equal(t, "restock", purchase.Notes)
		assert.True(t, purchase.Total.Equal(decimal.NewFromInt(50)))
	})

	t.Run("rejects nil vendor", func(t *testing.T) {
		purchase := createTestPurchase(t)
		err := purchase.UpdateDetails(uuid.Nil, "", time.Now(), "")
		assert.Error(t, err)
	})
}
