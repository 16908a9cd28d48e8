package checkout

import "rocketshop/internal/cart"

// MethodOption is a payment method as offered in the dialog
type MethodOption struct {
	PaymentMethod
	// Badge marks placeholder methods
	Badge string `json:"badge,omitempty"`
}

// View is the checkout dialog as presented to the buyer
type View struct {
	State        State          `json:"state"`
	Open         bool           `json:"open"`
	Methods      []MethodOption `json:"methods,omitempty"`
	Method       *PaymentMethod `json:"method,omitempty"`
	Quote        Quote          `json:"quote"`
	Instructions *Instructions  `json:"instructions,omitempty"`
}

// View projects the flow for the given cart totals
func (f *Flow) View(totals cart.Totals, details PaymentDetails) View {
	v := View{
		State: f.state(),
		Open:  f.IsOpen(),
		Quote: f.Quote(totals),
	}

	switch f.state() {
	case StateMethodSelection:
		for _, m := range Methods() {
			opt := MethodOption{PaymentMethod: m}
			if !m.Enabled {
				opt.Badge = "Скоро"
			}
			v.Methods = append(v.Methods, opt)
		}
	case StateMethodChosen:
		if m, ok := f.ChosenMethod(); ok {
			v.Method = &m
			ins := details.Instructions()
			v.Instructions = &ins
		}
	}

	return v
}
