package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnit(t *testing.T) {
	t.Run("creates standalone unit with factor 1", func(t *testing.T) {
		unit, err := NewUnit(uuid.New(), "Kilogram", "kg")
		require.NoError(t, err)

		assert.False(t, unit.HasBaseUnit())
		assert.True(t, unit.ConversionFactor.Equal(decimal.NewFromInt(1)))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewUnit(uuid.New(), "  ", "kg")
		assert.Error(t, err)
	})
}

func TestNewDerivedUnit(t *testing.T) {
	t.Run("creates unit with base and factor", func(t *testing.T) {
		baseID := uuid.New()
		unit, err := NewDerivedUnit(uuid.New(), "Gram", "g", baseID, decimal.NewFromFloat(0.001))
		require.NoError(t, err)

		assert.True(t, unit.HasBaseUnit())
		assert.Equal(t, baseID, *unit.BaseUnitID)
	})

	t.Run("rejects non-positive factor", func(t *testing.T) {
		_, err := NewDerivedUnit(uuid.New(), "Gram", "g", uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestUnit_SetBaseUnit(t *testing.T) {
	t.Run("rejects self reference", func(t *testing.T) {
		unit, err := NewUnit(uuid.New(), "Kilogram", "kg")
		require.NoError(t, err)

		err = unit.SetBaseUnit(unit.ID, decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("clearing restores factor 1", func(t *testing.T) {
		unit, err := NewDerivedUnit(uuid.New(), "Gram", "g", uuid.New(), decimal.NewFromFloat(0.001))
		require.NoError(t, err)

		unit.ClearBaseUnit()
		assert.False(t, unit.HasBaseUnit())
		assert.True(t, unit.ConversionFactor.Equal(decimal.NewFromInt(1)))
	})
}

func TestUnit_ConvertToBase(t *testing.T) {
	tests := []struct {
		name     string
		factor   string
		quantity string
		want     string
	}{
		{"grams to kilograms", "0.001", "2000", "2"},
		{"dozens to pieces", "12", "3", "36"},
		{"identity", "1", "7.5", "7.5"},
		{"fractional quantity", "0.001", "250", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewDerivedUnit(uuid.New(), "U", "u", uuid.New(), decimal.RequireFromString(tt.factor))
			require.NoError(t, err)

			got := unit.ConvertToBase(decimal.RequireFromString(tt.quantity))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}
