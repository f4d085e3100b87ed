package domain

import "github.com/shopspring/decimal"

// CentThreshold is the smallest difference treated as real money movement.
// Anything below it is accumulated float noise from older clients.
var CentThreshold = decimal.New(1, -2)

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinCent reports whether two amounts differ by less than one cent.
func WithinCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(CentThreshold)
}
