package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSale(t *testing.T) *Sale {
	sale, err := NewSale(uuid.New(), "INV-2026-00001", uuid.New(), "Test Client", time.Now())
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	t.Run("creates sale with valid fields", func(t *testing.T) {
		sale := createTestSale(t)

		assert.NotEqual(t, uuid.Nil, sale.ID)
		assert.Equal(t, "INV-2026-00001", sale.InvoiceNumber)
		assert.True(t, sale.Total.IsZero())
		assert.False(t, sale.HasItems())
	})

	t.Run("rejects empty invoice number", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "", uuid.New(), "Client", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil client", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "INV-2026-00001", uuid.Nil, "", time.Now())
		assert.Error(t, err)
	})
}

func TestSale_AddItem(t *testing.T) {
	t.Run("computes line total and base quantity", func(t *testing.T) {
		sale := createTestSale(t)

		item, err := sale.AddItem(uuid.New(), "Flour", uuid.New(), "Gram",
			decimal.NewFromInt(500), decimal.RequireFromString("0.05"), decimal.NewFromFloat(0.001))
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(25)), "line total %s", item.LineTotal)
		assert.True(t, item.BaseQuantity.Equal(decimal.RequireFromString("0.5")), "base quantity %s", item.BaseQuantity)
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(25)))
	})

	t.Run("accumulates total across items", func(t *testing.T) {
		sale := createTestSale(t)

		_, err := sale.AddItem(uuid.New(), "Bread", uuid.New(), "Piece",
			decimal.NewFromInt(10), decimal.RequireFromString("2.50"), decimal.NewFromInt(1))
		require.NoError(t, err)
		_, err = sale.AddItem(uuid.New(), "Cake", uuid.New(), "Piece",
			decimal.NewFromInt(2), decimal.RequireFromString("15.00"), decimal.NewFromInt(1))
		require.NoError(t, err)

		assert.True(t, sale.Total.Equal(decimal.RequireFromString("55.00")), "total %s", sale.Total)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		sale := createTestSale(t)

		_, err := sale.AddItem(uuid.New(), "Bread", uuid.New(), "Piece",
			decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}
