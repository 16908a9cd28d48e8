package session

import (
	"time"

	"rocketshop/internal/cart"
	"rocketshop/internal/catalog"
	"rocketshop/internal/checkout"
	"rocketshop/internal/models"
)

// CartView is the cart as presented to the buyer
type CartView struct {
	Lines    []models.CartLine `json:"lines"`
	Totals   cart.Totals       `json:"totals"`
	Discount cart.Discount     `json:"discount"`
	Open     bool              `json:"open"`
	Empty    bool              `json:"empty"`
	Message  string            `json:"message,omitempty"`
}

// View is the whole session as presented to the buyer
type View struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Cart      CartView      `json:"cart"`
	Checkout  checkout.View `json:"checkout"`
	Filters   catalog.Query `json:"filters"`
	CreatedAt time.Time     `json:"created_at"`
}

// AddResult is the outcome of adding a product to the cart
type AddResult struct {
	cart.AddResult
	Cart CartView `json:"cart"`
}

func cartView(s *Session) CartView {
	lines := s.Cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	v := CartView{
		Lines:    lines,
		Totals:   s.Totals(),
		Discount: s.Discount,
		Open:     s.CartOpen,
		Empty:    s.Cart.IsEmpty(),
	}
	if v.Empty {
		v.Message = cart.EmptyMessage
	}
	return v
}

func checkoutView(s *Session, details checkout.PaymentDetails) checkout.View {
	return s.Checkout.View(s.Totals(), details)
}

func sessionView(s *Session, details checkout.PaymentDetails) *View {
	return &View{
		ID:        s.ID,
		Username:  s.Username,
		Cart:      cartView(s),
		Checkout:  checkoutView(s, details),
		Filters:   s.Filters,
		CreatedAt: s.CreatedAt,
	}
}
