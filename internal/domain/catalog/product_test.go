package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Solomo de Res", decimal.NewFromFloat(10.50), "carnes", UnitKg)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Solomo de Res", product.Name)
		assert.Equal(t, "carnes", product.Department)
		assert.Equal(t, UnitKg, product.Unit)
		assert.True(t, product.Available)
		assert.False(t, product.Featured)
		assert.NotEmpty(t, product.ID)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("  ", decimal.NewFromInt(1), "carnes", UnitKg)
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Solomo", decimal.NewFromFloat(-0.01), "carnes", UnitKg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("fails with empty department", func(t *testing.T) {
		_, err := NewProduct("Solomo", decimal.NewFromInt(1), "", UnitKg)
		require.Error(t, err)
	})

	t.Run("fails with unknown unit", func(t *testing.T) {
		_, err := NewProduct("Solomo", decimal.NewFromInt(1), "carnes", Unit("tonelada"))
		require.Error(t, err)
	})
}

func TestProductMutations(t *testing.T) {
	product, err := NewProduct("Solomo", decimal.NewFromInt(10), "carnes", UnitKg)
	require.NoError(t, err)

	t.Run("stock is advisory and never negative", func(t *testing.T) {
		require.NoError(t, product.SetStock(5))
		assert.Equal(t, 5, product.Stock)
		assert.Error(t, product.SetStock(-1))
	})

	t.Run("price cannot go negative", func(t *testing.T) {
		assert.Error(t, product.SetPrice(decimal.NewFromInt(-1)))
		require.NoError(t, product.SetPrice(decimal.NewFromFloat(12.25)))
		assert.Equal(t, "12.25", product.PriceMoney().StringFixed(2))
	})

	t.Run("availability and featured flags", func(t *testing.T) {
		product.SetAvailability(false)
		product.SetFeatured(true)
		assert.False(t, product.Available)
		assert.True(t, product.Featured)
	})
}

func TestIsCarrier(t *testing.T) {
	moto, err := NewProduct("Moto", decimal.NewFromInt(2), CarrierDepartmentSlug, UnitUnd)
	require.NoError(t, err)
	assert.True(t, moto.IsCarrier())

	beef, err := NewProduct("Solomo", decimal.NewFromInt(10), "carnes", UnitKg)
	require.NoError(t, err)
	assert.False(t, beef.IsCarrier())
}
