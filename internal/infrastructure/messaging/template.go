package messaging

import (
	"fmt"
	"strings"

	"github.com/jx4/backend/internal/domain/ordering"
)

// maxItemLines caps the itemized section; carts longer than this are
// summarized so the rendered message stays under the channel's practical
// length ceiling
const maxItemLines = 20

// RenderOrderMessage renders the deterministic plain-text order summary
// sent to the department over WhatsApp. Literal newlines; only the simple
// *emphasis* markers WhatsApp renders.
func RenderOrderMessage(order *ordering.Order) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🧾 *NUEVO PEDIDO %s*\n\n", order.Code)
	fmt.Fprintf(&sb, "👤 Cliente: %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "📞 Teléfono: %s\n\n", order.CustomerPhone)

	sb.WriteString("🛒 Productos:\n")
	for i, item := range order.Items {
		if i == maxItemLines {
			fmt.Fprintf(&sb, "… y %d productos más\n", len(order.Items)-maxItemLines)
			break
		}
		fmt.Fprintf(&sb, "• %dx %s (%s) — $%s\n",
			item.Quantity, item.Name, item.Unit, item.Subtotal().StringFixed(2))
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "💵 Total: $%s\n", order.TotalUSD.StringFixed(2))
	fmt.Fprintf(&sb, "💰 Total Bs: Bs %s (tasa %s)\n\n",
		order.TotalVES.StringFixed(2), order.AppliedRate.StringFixed(2))

	switch order.DeliveryMethod {
	case ordering.DeliveryMethodDelivery:
		if order.CarrierName != "" {
			fmt.Fprintf(&sb, "🚚 Entrega: delivery — %s ($%s)\n",
				order.CarrierName, order.CarrierFeeUSD.StringFixed(2))
		} else {
			sb.WriteString("🚚 Entrega: delivery\n")
		}
		if order.Address != "" {
			fmt.Fprintf(&sb, "📍 Dirección: %s\n", order.Address)
		}
	default:
		sb.WriteString("🏪 Entrega: retiro en tienda\n")
	}

	if order.PaymentMethod != "" {
		fmt.Fprintf(&sb, "💳 Pago: %s\n", order.PaymentMethod)
	}
	if order.Notes != "" {
		fmt.Fprintf(&sb, "📝 Notas: %s\n", order.Notes)
	}

	return sb.String()
}
