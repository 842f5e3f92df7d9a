package repo_interfaces

import (
	"context"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type CurrencyRepository interface {
	Create(ctx context.Context, currency domain.Currency) (domain.Currency, error)
	Update(ctx context.Context, currency domain.Currency) (domain.Currency, error)
	GetByID(ctx context.Context, id int64) (domain.Currency, error)
	GetBySymbol(ctx context.Context, symbol string) (domain.Currency, error)
	List(ctx context.Context) ([]domain.Currency, error)
	// Delete removes the currency. Implementations return
	// domain.ErrReferentialBlock while any account still references it.
	Delete(ctx context.Context, id int64) error
}
