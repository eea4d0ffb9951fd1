package pricing

import "github.com/shopspring/decimal"

// RoundPrice converts a stored anchor price (which may be fractional)
// to whole currency units, rounding half up. This is the only place a
// float price becomes a breakdown amount; everything downstream works
// on integers.
func RoundPrice(price float64) int64 {
	return decimal.NewFromFloat(price).Round(0).IntPart()
}
