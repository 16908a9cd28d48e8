package models

import "time"

// Product represents a sellable catalog item
type Product struct {
	ID            int64  `db:"id" json:"id" yaml:"id"`
	Name          string `db:"name" json:"name" yaml:"name"`
	Game          string `db:"game" json:"game" yaml:"game"`
	Category      string `db:"category" json:"category" yaml:"category"`
	Price         int64  `db:"price" json:"price" yaml:"price"`
	OriginalPrice *int64 `db:"original_price" json:"original_price,omitempty" yaml:"original_price,omitempty"`
	Platform      string `db:"platform" json:"platform" yaml:"platform"`
	Amount        string `db:"amount" json:"amount" yaml:"amount"`
	Description   string `db:"description" json:"description" yaml:"description"`
	Popular       bool   `db:"popular" json:"popular" yaml:"popular"`
	DeliveryTime  string `db:"delivery_time" json:"delivery_time,omitempty" yaml:"delivery_time,omitempty"`
	Image         string `db:"image" json:"image" yaml:"image"`
}

// CartLine is one product's quantity entry within a cart
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns unit price times quantity
func (l CartLine) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Purchase is an entry of a user's purchase history
type Purchase struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"-"`
	Date      time.Time `db:"purchased_at" json:"date"`
	Product   string    `db:"product" json:"product"`
	Amount    string    `db:"amount" json:"amount"`
	Price     int64     `db:"price" json:"price"`
	Status    string    `db:"status" json:"status"`
	OrderID   string    `db:"order_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// Purchase statuses
const (
	PurchaseStatusCompleted = "completed"
	PurchaseStatusPending   = "pending"
)
