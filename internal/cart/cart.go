package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is a single product entry inside a visitor cart.
type LineItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// Cart aggregates the line items held for a single visitor token. IsOpen
// mirrors the storefront drawer state so it survives page loads.
type Cart struct {
	Items     []LineItem `json:"items"`
	IsOpen    bool       `json:"is_open"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Contains reports whether the product is already in the cart.
func (c *Cart) Contains(productID uuid.UUID) bool {
	return c.indexOf(productID) >= 0
}

// Add appends the item, merging quantities when the product is already present.
func (c *Cart) Add(item LineItem) {
	if idx := c.indexOf(item.ProductID); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// SetQuantity replaces the quantity for the product. A quantity of zero or
// less removes the line. Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	if qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return true
	}
	c.Items[idx].Quantity = qty
	return true
}

// Remove drops the product's line item. Returns false when absent.
func (c *Cart) Remove(productID uuid.UUID) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// SetOpen records the drawer visibility state.
func (c *Cart) SetOpen(open bool) {
	c.IsOpen = open
}

// ItemCount sums the quantities across all line items.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity across all line items.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
