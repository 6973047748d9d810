package ordering

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DeliveryMethod is how the customer receives the order
type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodPickup   DeliveryMethod = "retiro"
)

// OrderStatus is the fulfillment state of an order. Checkout only ever writes
// OrderStatusPending; the remaining transitions belong to the admin console.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusConfirmed OrderStatus = "confirmado"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

// CartItems is the embedded item list persisted with an order. Orders embed
// snapshots, not references: the record stays historically correct even when
// products are later edited or deleted.
type CartItems []CartItem

// Value implements driver.Valuer, serializing the items as JSON
func (items CartItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (items *CartItems) Scan(value interface{}) error {
	if value == nil {
		*items = CartItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for CartItems: %T", value)
	}
	return json.Unmarshal(data, items)
}

// Order is an immutable historical record of a completed checkout.
// total_bs is always reproducible from the stored fields: it equals
// total × tasa_aplicada rounded to 2 places, using the rate captured at order
// time, never the live configuration rate.
type Order struct {
	shared.BaseEntity
	Code           string          `gorm:"column:order_id;type:varchar(40);not null;uniqueIndex" json:"order_id"`
	CustomerName   string          `gorm:"column:nombre_cliente;type:varchar(200);not null" json:"nombre_cliente"`
	CustomerPhone  string          `gorm:"column:telefono_cliente;type:varchar(30);not null" json:"telefono_cliente"`
	Items          CartItems       `gorm:"column:productos;type:jsonb" json:"productos"`
	TotalUSD       decimal.Decimal `gorm:"column:total;type:decimal(18,2);not null" json:"total"`
	TotalVES       decimal.Decimal `gorm:"column:total_bs;type:decimal(18,2);not null" json:"total_bs"`
	AppliedRate    decimal.Decimal `gorm:"column:tasa_aplicada;type:decimal(18,4);not null" json:"tasa_aplicada"`
	PaymentMethod  string          `gorm:"column:metodo_pago;type:varchar(50)" json:"metodo_pago"`
	DeliveryMethod DeliveryMethod  `gorm:"column:metodo_entrega;type:varchar(20);not null" json:"metodo_entrega"`
	CarrierName    string          `gorm:"column:tipo_transporte;type:varchar(100)" json:"tipo_transporte,omitempty"`
	CarrierFeeUSD  decimal.Decimal `gorm:"column:tarifa_transporte;type:decimal(18,2)" json:"tarifa_transporte"`
	Status         OrderStatus     `gorm:"column:estado;type:varchar(20);not null;default:'pendiente'" json:"estado"`
	Department     string          `gorm:"column:departamento;type:varchar(50);not null;index" json:"departamento"`
	Address        string          `gorm:"column:direccion;type:text" json:"direccion"`
	Notes          string          `gorm:"column:notas;type:text" json:"notas,omitempty"`
	PlacedAt       time.Time       `gorm:"column:fecha_pedido;not null;index" json:"fecha_pedido"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderParams carries everything the checkout computed for the record
type NewOrderParams struct {
	Code           string
	CustomerName   string
	CustomerPhone  string
	Items          []CartItem
	TotalUSD       decimal.Decimal
	TotalVES       decimal.Decimal
	AppliedRate    decimal.Decimal
	PaymentMethod  string
	DeliveryMethod DeliveryMethod
	CarrierName    string
	CarrierFeeUSD  decimal.Decimal
	Department     string
	Address        string
	Notes          string
	PlacedAt       time.Time
}

// NewOrder assembles an order record, deep-copying the item list and
// enforcing the stored-rate consistency invariant.
func NewOrder(params NewOrderParams) (*Order, error) {
	if strings.TrimSpace(params.Code) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_CODE", "Order code cannot be empty")
	}
	if len(params.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if !params.AppliedRate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Applied exchange rate must be positive")
	}
	expected := params.TotalUSD.Mul(params.AppliedRate).Round(2)
	if !params.TotalVES.Equal(expected) {
		return nil, shared.NewDomainError("INCONSISTENT_TOTAL",
			fmt.Sprintf("total_bs %s does not match total %s at rate %s", params.TotalVES, params.TotalUSD, params.AppliedRate))
	}

	items := make(CartItems, len(params.Items))
	copy(items, params.Items)

	return &Order{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           params.Code,
		CustomerName:   params.CustomerName,
		CustomerPhone:  params.CustomerPhone,
		Items:          items,
		TotalUSD:       params.TotalUSD,
		TotalVES:       params.TotalVES,
		AppliedRate:    params.AppliedRate,
		PaymentMethod:  params.PaymentMethod,
		DeliveryMethod: params.DeliveryMethod,
		CarrierName:    params.CarrierName,
		CarrierFeeUSD:  params.CarrierFeeUSD,
		Status:         OrderStatusPending,
		Department:     params.Department,
		Address:        params.Address,
		Notes:          params.Notes,
		PlacedAt:       params.PlacedAt,
	}, nil
}

// GenerateOrderCode builds the human-readable, time-based order code shown to
// the customer and embedded in the WhatsApp message.
func GenerateOrderCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("JX4-%s-%s", now.Format("20060102-150405"), suffix)
}
