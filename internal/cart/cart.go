package cart

import (
	"rocketshop/internal/models"
)

// EmptyMessage is shown when the cart has no lines
const EmptyMessage = "Корзина пуста"

// Cart is an ordered collection of lines, at most one per product id.
// The zero value is an empty cart.
type Cart struct {
	Lines []models.CartLine `json:"lines"`
}

// AddResult describes the outcome of Add
type AddResult struct {
	Line models.CartLine `json:"line"`
	// Created is true when a new line was appended
	Created bool `json:"created"`
	// OpenCart suggests the presentation layer show the cart
	OpenCart bool `json:"open_cart"`
}

func (c *Cart) index(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Line returns the line for productID, if present
func (c *Cart) Line(productID int64) (models.CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return models.CartLine{}, false
	}
	return c.Lines[i], true
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Add increments the line for product, appending a new line with quantity 1
// when the product is not in the cart yet.
func (c *Cart) Add(product models.Product) AddResult {
	if i := c.index(product.ID); i >= 0 {
		c.Lines[i].Quantity++
		return AddResult{Line: c.Lines[i], OpenCart: true}
	}

	line := models.CartLine{Product: product, Quantity: 1}
	c.Lines = append(c.Lines, line)
	return AddResult{Line: line, Created: true, OpenCart: true}
}

// Remove deletes the line for productID. Reports whether a line was removed.
func (c *Cart) Remove(productID int64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// UpdateQuantity sets the quantity of the line for productID to max(1, quantity).
// Reports whether a line was found.
func (c *Cart) UpdateQuantity(productID int64, quantity int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if quantity < 1 {
		quantity = 1
	}
	c.Lines[i].Quantity = quantity
	return true
}

// Increment raises the quantity of the line for productID by one
func (c *Cart) Increment(productID int64) bool {
	line, ok := c.Line(productID)
	if !ok {
		return false
	}
	return c.UpdateQuantity(productID, line.Quantity+1)
}

// Decrement lowers the quantity of the line for productID by one, never below 1
func (c *Cart) Decrement(productID int64) bool {
	line, ok := c.Line(productID)
	if !ok {
		return false
	}
	return c.UpdateQuantity(productID, max(1, line.Quantity-1))
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Lines = nil
}

// ItemCount returns the sum of quantities
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of price * quantity over all lines
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, l := range c.Lines {
		subtotal += l.LineTotal()
	}
	return subtotal
}
