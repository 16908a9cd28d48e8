package cart

// Discount is the session-wide promotional discount. It starts inactive and
// can only be switched on.
type Discount struct {
	Percent   int64 `json:"percent"`
	Activated bool  `json:"activated"`
}

// NewDiscount returns an inactive discount offering percent, clamped to 0..100
func NewDiscount(percent int64) Discount {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Discount{Percent: percent}
}

// Activate switches the discount on. Reports false if it was already active.
func (d *Discount) Activate() bool {
	if d.Activated {
		return false
	}
	d.Activated = true
	return true
}

// EffectivePercent is the percent applied to the subtotal: 0 until activated
func (d Discount) EffectivePercent() int64 {
	if !d.Activated {
		return 0
	}
	return d.Percent
}
