package models

import "time"

// Event types
const (
	EventTypeCartItemAdded       = "CART_ITEM_ADDED"
	EventTypeDiscountActivated   = "DISCOUNT_ACTIVATED"
	EventTypeCheckoutStarted     = "CHECKOUT_STARTED"
	EventTypePaymentMethodChosen = "PAYMENT_METHOD_CHOSEN"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemAddedEvent published when a product is added to a cart
type CartItemAddedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// DiscountActivatedEvent published when a session activates the promo discount
type DiscountActivatedEvent struct {
	BaseEvent
	Percent int64 `json:"percent"`
}

// CheckoutStartedEvent published when the payment dialog opens
type CheckoutStartedEvent struct {
	BaseEvent
	Subtotal int64          `json:"subtotal"`
	Discount int64          `json:"discount"`
	Total    int64          `json:"total"`
	Items    []LineItemData `json:"items"`
}

// PaymentMethodChosenEvent published when payment instructions are issued.
// OrderID is stable for an unchanged cart, so re-choosing a method yields
// the same order.
type PaymentMethodChosenEvent struct {
	BaseEvent
	OrderID    string         `json:"order_id"`
	Username   string         `json:"username,omitempty"`
	Method     string         `json:"method"`
	Total      int64          `json:"total"`
	Commission int64          `json:"commission"`
	FinalTotal int64          `json:"final_total"`
	Items      []LineItemData `json:"items"`
}

// LineItemData represents cart line data in events
type LineItemData struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Game      string `json:"game"`
	Amount    string `json:"amount"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// LineItems converts cart lines into event item data
func LineItems(lines []CartLine) []LineItemData {
	items := make([]LineItemData, 0, len(lines))
	for _, l := range lines {
		items = append(items, LineItemData{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Game:      l.Product.Game,
			Amount:    l.Product.Amount,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}
	return items
}
