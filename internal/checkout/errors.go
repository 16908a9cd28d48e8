package checkout

import "errors"

var (
	// ErrCartEmpty is returned when checkout is opened with no cart lines
	ErrCartEmpty = errors.New("cart is empty")
	// ErrUnknownMethod is returned for ids outside the payment method set
	ErrUnknownMethod = errors.New("unknown payment method")
	// ErrMethodDisabled is returned when a placeholder method is chosen
	ErrMethodDisabled = errors.New("payment method is not available")
	// ErrInvalidTransition is returned when an action does not apply to the current state
	ErrInvalidTransition = errors.New("invalid checkout transition")
)
