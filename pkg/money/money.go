// Package money carries the small decimal helpers shared by the result
// formatters. Monetary values travel as shopspring decimals at the API edges;
// the simulation hot loop stays on float64 arrays.
package money

import "github.com/shopspring/decimal"

// FromFloat converts a simulated wealth value to a decimal rounded to cents.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// NonNegative clamps a monetary value at zero. Wealth values are clamped at
// insolvency upstream; this guards derived quantities the same way.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatUSD formats a decimal as USD currency with 2 decimals.
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatPercent formats a 0-100 percentage with 1 decimal.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
