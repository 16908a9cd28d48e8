package checkout

import (
	"fmt"

	"rocketshop/internal/cart"
	"rocketshop/internal/money"
)

// State of the checkout dialog
type State string

const (
	StateIdle            State = "idle"
	StateMethodSelection State = "method_selection"
	StateMethodChosen    State = "method_chosen"
)

// Flow is the payment dialog state machine:
// Idle -> MethodSelection -> MethodChosen, with Back returning to
// MethodSelection and Close returning to Idle.
type Flow struct {
	State  State  `json:"state"`
	Method string `json:"method,omitempty"`
}

// NewFlow returns an idle flow
func NewFlow() Flow {
	return Flow{State: StateIdle}
}

func (f *Flow) state() State {
	if f.State == "" {
		return StateIdle
	}
	return f.State
}

// IsOpen reports whether the payment dialog is shown
func (f *Flow) IsOpen() bool {
	return f.state() != StateIdle
}

// Open starts method selection. Any previously chosen method is dropped.
func (f *Flow) Open(c *cart.Cart) error {
	if c.IsEmpty() {
		return ErrCartEmpty
	}
	f.State = StateMethodSelection
	f.Method = ""
	return nil
}

// Choose selects an enabled payment method
func (f *Flow) Choose(id string) (PaymentMethod, error) {
	if f.state() != StateMethodSelection {
		return PaymentMethod{}, fmt.Errorf("%w: choose from %s", ErrInvalidTransition, f.state())
	}
	m, err := SelectableMethod(id)
	if err != nil {
		return PaymentMethod{}, err
	}
	f.State = StateMethodChosen
	f.Method = m.ID
	return m, nil
}

// Back clears the chosen method and returns to selection
func (f *Flow) Back() error {
	if f.state() != StateMethodChosen {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, f.state())
	}
	f.State = StateMethodSelection
	f.Method = ""
	return nil
}

// Close dismisses the dialog
func (f *Flow) Close() {
	f.State = StateIdle
	f.Method = ""
}

// ChosenMethod returns the selected method, if any
func (f *Flow) ChosenMethod() (PaymentMethod, bool) {
	if f.state() != StateMethodChosen || f.Method == "" {
		return PaymentMethod{}, false
	}
	m, err := LookupMethod(f.Method)
	if err != nil {
		return PaymentMethod{}, false
	}
	return m, true
}

// Quote is the payable amount for a cart total and payment method
type Quote struct {
	Total             int64  `json:"total"`
	Commission        int64  `json:"commission"`
	CommissionPercent string `json:"commission_percent,omitempty"`
	FinalTotal        int64  `json:"final_total"`
}

// NewQuote computes commission and final total for total paid with m
func NewQuote(total int64, m PaymentMethod) Quote {
	q := Quote{Total: total, FinalTotal: total}
	if m.HasCommission() {
		q.Commission = money.ApplyRate(total, m.CommissionRate)
		q.CommissionPercent = money.RatePercent(m.CommissionRate)
		q.FinalTotal = total + q.Commission
	}
	return q
}

// Quote returns the quote for the chosen method, or the plain total when
// no method is chosen yet.
func (f *Flow) Quote(totals cart.Totals) Quote {
	m, ok := f.ChosenMethod()
	if !ok {
		return Quote{Total: totals.Total, FinalTotal: totals.Total}
	}
	return NewQuote(totals.Total, m)
}
