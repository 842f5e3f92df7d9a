package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency defines the unit an account is denominated in and the unit traded
// in a transaction entry.
type Currency struct {
	ID       int64
	FullName string
	// Symbol is the unique identifier, e.g. "USD".
	Symbol string
	// CurrentPrice is the reference price used to value entries that do not
	// carry an explicit price. Stored quantized to FractionTraded places.
	CurrentPrice decimal.Decimal
	// FractionTraded is the number of fractional digits traded for the
	// currency: 2 for cents, 0 for whole units only.
	FractionTraded int32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Normalize applies the storage invariants: a blank full name falls back to
// the symbol, and the current price is quantized to the traded fraction.
func (c *Currency) Normalize() {
	if strings.TrimSpace(c.FullName) == "" {
		c.FullName = c.Symbol
	}
	c.CurrentPrice = Quantize(c.CurrentPrice, c.FractionTraded)
}

// Quantize rounds value to the currency's traded fraction.
func (c Currency) Quantize(value decimal.Decimal) decimal.Decimal {
	return Quantize(value, c.FractionTraded)
}
