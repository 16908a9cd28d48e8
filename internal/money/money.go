// Package money applies percentages and rates to whole-unit amounts.
// The storefront currency has no subunits, so every result is rounded
// half away from zero to an integer.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ApplyRate returns round(amount * rate).
func ApplyRate(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

// ApplyPercent returns round(amount * percent / 100).
func ApplyPercent(amount int64, percent int64) int64 {
	return ApplyRate(amount, PercentRate(percent))
}

// PercentRate converts a whole percentage to a rate (20 -> 0.2).
func PercentRate(percent int64) decimal.Decimal {
	return decimal.NewFromInt(percent).Div(hundred)
}

// RatePercent formats a rate as a percentage string (0.02 -> "2").
func RatePercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String()
}
