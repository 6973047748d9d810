package messaging

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/ordering"
	"github.com/jx4/backend/internal/infrastructure/config"
)

func newTestOrder(t *testing.T, itemCount int) *ordering.Order {
	t.Helper()

	items := make([]ordering.CartItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		p, err := catalog.NewProduct(
			fmt.Sprintf("Producto %d", i+1),
			decimal.RequireFromString("10.00"),
			"carnes",
			catalog.UnitKg,
		)
		require.NoError(t, err)
		items = append(items, ordering.CartItem{Product: *p, Quantity: 2})
	}

	totalUSD := decimal.RequireFromString("20.00").Mul(decimal.NewFromInt(int64(itemCount)))
	rate := decimal.RequireFromString("36.5")

	order, err := ordering.NewOrder(ordering.NewOrderParams{
		Code:           "JX4-20260815-101530-AB12",
		CustomerName:   "María Pérez",
		CustomerPhone:  "584241234567",
		Items:          items,
		TotalUSD:       totalUSD,
		TotalVES:       totalUSD.Mul(rate).Round(2),
		AppliedRate:    rate,
		PaymentMethod:  "pago móvil",
		DeliveryMethod: ordering.DeliveryMethodDelivery,
		CarrierName:    "Moto Express",
		CarrierFeeUSD:  decimal.Zero,
		Department:     "carnes",
		Address:        "Calle 5, Paracotos",
		PlacedAt:       time.Now(),
	})
	require.NoError(t, err)
	return order
}

func TestRenderOrderMessage(t *testing.T) {
	t.Run("renders both currency totals from stored fields", func(t *testing.T) {
		order := newTestOrder(t, 1)

		msg := RenderOrderMessage(order)

		assert.Contains(t, msg, "JX4-20260815-101530-AB12")
		assert.Contains(t, msg, "María Pérez")
		assert.Contains(t, msg, "2x Producto 1 (kg) — $20.00")
		assert.Contains(t, msg, "Total: $20.00")
		assert.Contains(t, msg, "Bs 730.00")
		assert.Contains(t, msg, "tasa 36.50")
	})

	t.Run("includes delivery details", func(t *testing.T) {
		order := newTestOrder(t, 1)

		msg := RenderOrderMessage(order)

		assert.Contains(t, msg, "Moto Express")
		assert.Contains(t, msg, "Dirección: Calle 5, Paracotos")
		assert.Contains(t, msg, "Pago: pago móvil")
	})

	t.Run("summarizes carts past the line cap", func(t *testing.T) {
		order := newTestOrder(t, 25)

		msg := RenderOrderMessage(order)

		assert.Contains(t, msg, "… y 5 productos más")
		assert.Equal(t, maxItemLines, strings.Count(msg, "• "))
	})

	t.Run("short carts itemize fully", func(t *testing.T) {
		order := newTestOrder(t, 3)

		msg := RenderOrderMessage(order)

		assert.NotContains(t, msg, "productos más")
		assert.Equal(t, 3, strings.Count(msg, "• "))
	})
}

func TestLinkBuilder_BuildLink(t *testing.T) {
	builder := NewLinkBuilder(config.WhatsAppConfig{BaseURL: "https://wa.me"})

	t.Run("builds percent-encoded deep link", func(t *testing.T) {
		link := builder.BuildLink("+58 424-123.4567", "Hola mundo\ntotal $20.00")

		assert.True(t, strings.HasPrefix(link, "https://wa.me/584241234567?text="))
		assert.Contains(t, link, "Hola%20mundo%0Atotal%20%2420.00")
		assert.NotContains(t, link, "+")
		assert.NotContains(t, link, " ")
	})

	t.Run("full order message survives a URL round trip", func(t *testing.T) {
		order := newTestOrder(t, 2)
		msg := RenderOrderMessage(order)

		link := builder.BuildLink("584241234567", msg)

		assert.Contains(t, link, "text=")
		assert.NotContains(t, link, "\n")
	})
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "584241112233", NormalizePhone("+58 (424) 111-22.33"))
	assert.Equal(t, "", NormalizePhone("sin número"))
}
