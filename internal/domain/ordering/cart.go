package ordering

import (
	"github.com/google/uuid"
	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/shared/valueobject"
)

// Cart errors. These are typed signals the caller must handle: the cart never
// auto-clears on a cross-department add, the caller decides what to do.
var (
	ErrCrossDepartmentConflict = shared.NewDomainError("CROSS_DEPARTMENT_CONFLICT", "Cart items must belong to a single department")
	ErrCarrierNotCartable      = shared.NewDomainError("CARRIER_NOT_CARTABLE", "Carrier options are selected at checkout, not added to the cart")
	ErrEmptyCart               = shared.NewDomainError("EMPTY_CART", "Cart has no items")
)

// CartItem is a product snapshot plus a quantity. Snapshotting keeps price and
// name stable for the cart session even if an admin edits the product
// concurrently.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price × quantity for this line
func (i CartItem) Subtotal() valueobject.Money {
	return i.PriceMoney().MultiplyByInt(int64(i.Quantity))
}

// Cart is the customer's in-progress, single-department selection of
// products. Insertion order is preserved for display; it does not affect
// totals. A Cart instance is request-scoped and not safe for concurrent use.
type Cart struct {
	items []CartItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{items: make([]CartItem, 0)}
}

// NewCartFromItems rebuilds a cart from previously snapshotted items,
// replaying the single-department and carrier rules on every line.
func NewCartFromItems(items []CartItem) (*Cart, error) {
	cart := NewCart()
	for _, item := range items {
		if err := cart.Add(item.Product, item.Quantity); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Add puts a snapshot of the product in the cart. Adding a product from a
// different department than the existing items fails with
// ErrCrossDepartmentConflict; adding a carrier-class product fails with
// ErrCarrierNotCartable. Adding an existing product increments its quantity.
func (c *Cart) Add(product catalog.Product, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if product.IsCarrier() {
		return ErrCarrierNotCartable
	}
	if len(c.items) > 0 && c.items[0].Department != product.Department {
		return ErrCrossDepartmentConflict
	}

	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += qty
			return nil
		}
	}

	c.items = append(c.items, CartItem{Product: product, Quantity: qty})
	return nil
}

// Increment raises the quantity of the given product by one
func (c *Cart) Increment(productID uuid.UUID) error {
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items[i].Quantity++
			return nil
		}
	}
	return shared.ErrNotFound
}

// Decrement lowers the quantity of the given product by one. The floor is 1:
// decrementing a quantity of 1 is a no-op, removal is a separate operation.
func (c *Cart) Decrement(productID uuid.UUID) error {
	for i := range c.items {
		if c.items[i].ID == productID {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
			return nil
		}
	}
	return shared.ErrNotFound
}

// Remove deletes a line from the cart
func (c *Cart) Remove(productID uuid.UUID) error {
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the cart lines in insertion order
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Department returns the single department the cart belongs to, or "" when
// the cart is empty.
func (c *Cart) Department() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[0].Department
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns Σ(price × qty) over all lines in USD. The sum accumulates
// exact decimals; rounding happens only at display and persistence boundaries.
func (c *Cart) Subtotal() valueobject.Money {
	total := valueobject.ZeroUSD()
	for _, item := range c.items {
		total = total.MustAdd(item.Subtotal())
	}
	return total
}
