// Package state holds the authoritative session cart for an in-progress
// sale. A cart is Open until a checkout settles it; a settled cart is gone
// and the next sale opens a fresh one.
package state

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartResponse "github.com/kiranalabs/pos/cart/pkg/response"
	"github.com/kiranalabs/pos/internal/currency"
	inErrors "github.com/kiranalabs/pos/internal/errors"
)

// Line is one product's entry within a cart. At most one line exists per
// product id; repeat adds increment the quantity.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// Cart is the ordered set of lines for one register session. Lines are
// addressed by product id, never by position, so removals cannot invalidate
// another caller's reference.
type Cart struct {
	ID       uuid.UUID
	lines    []Line
	settling bool
}

func NewCart() *Cart {
	return &Cart{ID: uuid.New()}
}

func (c *Cart) AddItem(productID int64, name string, unitPrice decimal.Decimal) Line {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return c.lines[i]
		}
	}
	line := Line{ProductID: productID, Name: name, UnitPrice: unitPrice, Quantity: 1}
	c.lines = append(c.lines, line)
	return line
}

// SetQuantity updates a line's quantity; zero or below removes the line.
func (c *Cart) SetQuantity(productID int64, quantity int32) error {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return inErrors.ErrProductNotFound
}

func (c *Cart) RemoveItem(productID int64) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return inErrors.ErrProductNotFound
}

func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Total())
	}
	return subtotal
}

// GrandTotal equals the subtotal; there is no tax or discount logic.
func (c *Cart) GrandTotal() decimal.Decimal {
	return c.Subtotal()
}

// Render projects the cart into its display form. It never mutates state and
// is safe on an empty cart.
func (c *Cart) Render() cartResponse.Cart {
	lines := make([]cartResponse.CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		lines = append(lines, RenderLine(l))
	}
	subtotal := c.Subtotal()
	grandTotal := c.GrandTotal()
	return cartResponse.Cart{
		ID:                c.ID,
		Lines:             lines,
		Subtotal:          subtotal,
		SubtotalDisplay:   currency.Format(subtotal),
		GrandTotal:        grandTotal,
		GrandTotalDisplay: currency.Format(grandTotal),
	}
}

func RenderLine(l Line) cartResponse.CartLine {
	total := l.Total()
	return cartResponse.CartLine{
		ProductID:        l.ProductID,
		Name:             l.Name,
		UnitPrice:        l.UnitPrice,
		Quantity:         l.Quantity,
		LineTotal:        total,
		LineTotalDisplay: currency.Format(total),
	}
}
