package domain

import "github.com/shopspring/decimal"

// CartLine is one row of the cart: a distinct product and its accumulated quantity.
// The line id is the product id.
type CartLine struct {
	Product  Product
	Quantity int
}

// ID returns the line identifier.
func (l CartLine) ID() string {
	return l.Product.ID
}

// Subtotal returns unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a read-only snapshot of the cart in insertion order.
type Cart struct {
	Lines     []CartLine
	Total     decimal.Decimal
	ItemCount int
}

// NewCart computes the derived totals for the given lines. The slice is copied.
func NewCart(lines []CartLine) Cart {
	c := Cart{
		Lines: make([]CartLine, len(lines)),
		Total: decimal.Zero,
	}
	copy(c.Lines, lines)
	for _, l := range c.Lines {
		c.Total = c.Total.Add(l.Subtotal())
		c.ItemCount += l.Quantity
	}
	return c
}

// Line looks up a line by id.
func (c Cart) Line(id string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ID() == id {
			return l, true
		}
	}
	return CartLine{}, false
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}
