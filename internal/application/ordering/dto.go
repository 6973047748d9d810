package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jx4/backend/internal/domain/ordering"
)

// CheckoutItem is one cart line in a checkout request. Quantities are
// authoritative; prices are always re-read from the catalog.
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest drives the order finalizer
type CheckoutRequest struct {
	CustomerName   string         `json:"nombre_cliente" binding:"required,min=1,max=200"`
	CustomerPhone  string         `json:"telefono_cliente" binding:"required,min=7,max=30"`
	Items          []CheckoutItem `json:"productos" binding:"required,min=1,dive"`
	PaymentMethod  string         `json:"metodo_pago" binding:"max=50"`
	DeliveryMethod string         `json:"metodo_entrega" binding:"required,oneof=delivery retiro"`
	CarrierID      *uuid.UUID     `json:"transporte_id"`
	Address        string         `json:"direccion" binding:"max=500"`
	Notes          string         `json:"notas" binding:"max=1000"`
}

// PersistResult reports whether the order record reached the store.
// A failure here never blocks the notification step.
type PersistResult struct {
	Saved bool   `json:"saved"`
	Error string `json:"error,omitempty"`
}

// NotifyResult reports the WhatsApp handoff
type NotifyResult struct {
	LinkBuilt bool   `json:"link_built"`
	Link      string `json:"link,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckoutResult is the finalizer's response
type CheckoutResult struct {
	OrderCode   string          `json:"order_id"`
	TotalUSD    decimal.Decimal `json:"total"`
	TotalVES    decimal.Decimal `json:"total_bs"`
	AppliedRate decimal.Decimal `json:"tasa_aplicada"`
	Persist     PersistResult   `json:"persistencia"`
	Notify      NotifyResult    `json:"notificacion"`
}

// OrderResponse represents an order in admin API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	Code           string              `json:"order_id"`
	CustomerName   string              `json:"nombre_cliente"`
	CustomerPhone  string              `json:"telefono_cliente"`
	Items          []ordering.CartItem `json:"productos"`
	TotalUSD       decimal.Decimal     `json:"total"`
	TotalVES       decimal.Decimal     `json:"total_bs"`
	AppliedRate    decimal.Decimal     `json:"tasa_aplicada"`
	PaymentMethod  string              `json:"metodo_pago"`
	DeliveryMethod string              `json:"metodo_entrega"`
	CarrierName    string              `json:"tipo_transporte,omitempty"`
	CarrierFeeUSD  decimal.Decimal     `json:"tarifa_transporte"`
	Status         string              `json:"estado"`
	Department     string              `json:"departamento"`
	Address        string              `json:"direccion"`
	Notes          string              `json:"notas,omitempty"`
	PlacedAt       time.Time           `json:"fecha_pedido"`
}

// OrderListFilter represents filter options for the admin order list
type OrderListFilter struct {
	Status         string `form:"estado" binding:"omitempty,oneof=pendiente confirmado entregado cancelado"`
	Department     string `form:"departamento"`
	DeliveryMethod string `form:"metodo_entrega" binding:"omitempty,oneof=delivery retiro"`
	Search         string `form:"search"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToOrderResponse converts a domain Order
func ToOrderResponse(o *ordering.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		Code:           o.Code,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Items:          o.Items,
		TotalUSD:       o.TotalUSD,
		TotalVES:       o.TotalVES,
		AppliedRate:    o.AppliedRate,
		PaymentMethod:  o.PaymentMethod,
		DeliveryMethod: string(o.DeliveryMethod),
		CarrierName:    o.CarrierName,
		CarrierFeeUSD:  o.CarrierFeeUSD,
		Status:         string(o.Status),
		Department:     o.Department,
		Address:        o.Address,
		Notes:          o.Notes,
		PlacedAt:       o.PlacedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
