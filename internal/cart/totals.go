package cart

import "rocketshop/internal/money"

// Totals are the monetary values derived from a cart and its discount
type Totals struct {
	Subtotal        int64 `json:"subtotal"`
	DiscountPercent int64 `json:"discount_percent"`
	Discount        int64 `json:"discount"`
	Total           int64 `json:"total"`
	ItemCount       int   `json:"item_count"`
}

// Totals derives subtotal, discount and total. Nothing is cached.
func (c *Cart) Totals(d Discount) Totals {
	subtotal := c.Subtotal()
	percent := d.EffectivePercent()
	discount := money.ApplyPercent(subtotal, percent)

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		Discount:        discount,
		Total:           subtotal - discount,
		ItemCount:       c.ItemCount(),
	}
}
