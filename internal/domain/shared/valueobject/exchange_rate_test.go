package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExchangeRate(t *testing.T) {
	t.Run("accepts positive rate", func(t *testing.T) {
		rate, err := NewExchangeRateFromFloat(36.5)
		require.NoError(t, err)
		assert.Equal(t, "36.5", rate.String())
	})

	t.Run("rejects zero and negative rates", func(t *testing.T) {
		_, err := NewExchangeRate(decimal.Zero)
		assert.Error(t, err)

		_, err = NewExchangeRateFromFloat(-1)
		assert.Error(t, err)
	})
}

func TestConvert(t *testing.T) {
	rate, err := NewExchangeRateFromFloat(36.5)
	require.NoError(t, err)

	t.Run("converts USD to VES rounded to 2 places", func(t *testing.T) {
		ves, err := rate.Convert(NewMoneyUSDFromFloat(20.00))
		require.NoError(t, err)
		assert.Equal(t, VES, ves.Currency())
		assert.Equal(t, "730.00", ves.StringFixed(2))
	})

	t.Run("rounds only at the conversion boundary", func(t *testing.T) {
		odd, err := NewExchangeRateFromFloat(36.555)
		require.NoError(t, err)

		ves, err := odd.Convert(NewMoneyUSDFromFloat(1.01))
		require.NoError(t, err)
		// 1.01 * 36.555 = 36.92055 -> 36.92
		assert.Equal(t, "36.92", ves.StringFixed(2))
	})

	t.Run("refuses non-USD sources", func(t *testing.T) {
		_, err := rate.Convert(NewMoneyVES(decimal.NewFromInt(100)))
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add requires matching currency", func(t *testing.T) {
		_, err := NewMoneyUSDFromFloat(1).Add(NewMoneyVES(decimal.NewFromInt(1)))
		assert.Error(t, err)
	})

	t.Run("multiply by int", func(t *testing.T) {
		total := NewMoneyUSDFromFloat(8.75).MultiplyByInt(3)
		assert.Equal(t, "26.25", total.StringFixed(2))
	})

	t.Run("repeated addition stays exact", func(t *testing.T) {
		total := ZeroUSD()
		cent := NewMoneyUSDFromFloat(0.10)
		for i := 0; i < 10; i++ {
			total = total.MustAdd(cent)
		}
		assert.True(t, total.Amount().Equal(decimal.NewFromInt(1)))
	})
}
