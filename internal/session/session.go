package session

import (
	"fmt"
	"time"

	"rocketshop/internal/cart"
	"rocketshop/internal/catalog"
	"rocketshop/internal/checkout"
	"rocketshop/internal/models"
)

// Session is the complete state of one storefront visit. It is owned by the
// caller, mutated by the cart and checkout operations, and saved back to a Store.
type Session struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Cart     cart.Cart     `json:"cart"`
	Discount cart.Discount `json:"discount"`
	Checkout checkout.Flow `json:"checkout"`
	Filters  catalog.Query `json:"filters"`
	CartOpen bool          `json:"cart_open"`
	// CartVersion changes whenever the cart lines or the discount change
	CartVersion int64     `json:"cart_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New returns a fresh session with an empty cart and inactive discount
func New(id, username string, discountPercent int64, now time.Time) *Session {
	return &Session{
		ID:        id,
		Username:  username,
		Discount:  cart.NewDiscount(discountPercent),
		Checkout:  checkout.NewFlow(),
		Filters:   catalog.DefaultQuery(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy that shares no mutable memory with s
func (s *Session) Clone() *Session {
	c := *s
	if s.Cart.Lines != nil {
		c.Cart.Lines = make([]models.CartLine, len(s.Cart.Lines))
		copy(c.Cart.Lines, s.Cart.Lines)
	}
	return &c
}

// Totals derives the cart totals with the session discount
func (s *Session) Totals() cart.Totals {
	return s.Cart.Totals(s.Discount)
}

// OrderID identifies the order the current cart would become. It stays the
// same while the cart is unchanged, however often checkout is reopened.
func (s *Session) OrderID() string {
	return fmt.Sprintf("%s-%d", s.ID, s.CartVersion)
}

// sameOrder reports whether s and other carry the same lines and discount
func (s *Session) sameOrder(other *Session) bool {
	if s.Discount != other.Discount || len(s.Cart.Lines) != len(other.Cart.Lines) {
		return false
	}
	for i, l := range s.Cart.Lines {
		o := other.Cart.Lines[i]
		if l.Product.ID != o.Product.ID || l.Quantity != o.Quantity || l.Product.Price != o.Product.Price {
			return false
		}
	}
	return true
}

// closeCheckoutIfEmpty keeps the dialog from staying open over an empty cart
func (s *Session) closeCheckoutIfEmpty() {
	if s.Cart.IsEmpty() && s.Checkout.IsOpen() {
		s.Checkout.Close()
	}
}
