package domain

import "github.com/shopspring/decimal"

// Quantize rounds value to places fractional digits using round-half-down:
// an exact tie rounds toward the neighbor of smaller magnitude, so 10.005
// becomes 10.00 and -10.005 becomes -10.00. Every stored amount, price and
// reference price passes through this function.
func Quantize(value decimal.Decimal, places int32) decimal.Decimal {
	if places < 0 {
		places = 0
	}
	half := decimal.New(5, -(places + 1))
	if value.Sign() >= 0 {
		return value.Sub(half).RoundCeil(places)
	}
	return value.Add(half).RoundFloor(places)
}
