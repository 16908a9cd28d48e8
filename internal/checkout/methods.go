package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment method ids
const (
	MethodSber  = "sber"
	MethodTBank = "tbank"
	MethodSBP   = "sbp"
)

// PaymentMethod is one variant of the closed set of payment methods
type PaymentMethod struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Enabled        bool            `json:"enabled"`
}

// HasCommission reports whether the method adds a surcharge
func (m PaymentMethod) HasCommission() bool {
	return m.CommissionRate.IsPositive()
}

var methods = []PaymentMethod{
	{ID: MethodSber, Title: "Сбербанк", CommissionRate: decimal.RequireFromString("0.02"), Enabled: true},
	{ID: MethodTBank, Title: "Т-Банк", Enabled: false},
	{ID: MethodSBP, Title: "СБП", Enabled: false},
}

// Methods returns every payment method in display order
func Methods() []PaymentMethod {
	out := make([]PaymentMethod, len(methods))
	copy(out, methods)
	return out
}

// LookupMethod returns the method with the given id
func LookupMethod(id string) (PaymentMethod, error) {
	for _, m := range methods {
		if m.ID == id {
			return m, nil
		}
	}
	return PaymentMethod{}, fmt.Errorf("%w: %q", ErrUnknownMethod, id)
}

// SelectableMethod returns the method with the given id if it can be chosen
func SelectableMethod(id string) (PaymentMethod, error) {
	m, err := LookupMethod(id)
	if err != nil {
		return PaymentMethod{}, err
	}
	if !m.Enabled {
		return PaymentMethod{}, fmt.Errorf("%w: %q", ErrMethodDisabled, id)
	}
	return m, nil
}
