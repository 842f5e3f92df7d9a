package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

// CurrencyParams carries the caller's input for creating or updating a
// currency. Nil pointer fields fall back to defaults on create (price 1,
// fraction 2) and leave the stored value unchanged on update.
type CurrencyParams struct {
	Symbol         string
	FullName       string
	CurrentPrice   *decimal.Decimal
	FractionTraded *int32
}

type CurrencyService interface {
	CreateCurrency(ctx context.Context, params CurrencyParams) (domain.Currency, error)
	UpdateCurrency(ctx context.Context, id int64, params CurrencyParams) (domain.Currency, error)
	DeleteCurrency(ctx context.Context, id int64) error
	GetCurrency(ctx context.Context, id int64) (domain.Currency, error)
	GetCurrencyBySymbol(ctx context.Context, symbol string) (domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	// QuantizeValue rounds value to the currency's traded fraction. Display
	// layers call this at the formatting boundary so a value is always shown
	// at the currency's current precision.
	QuantizeValue(ctx context.Context, currencyID int64, value decimal.Decimal) (decimal.Decimal, error)
}
