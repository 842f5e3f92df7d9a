package repo_interfaces

import (
	"context"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	// List returns all accounts in insertion order.
	List(ctx context.Context) ([]domain.Account, error)
	Count(ctx context.Context) (int64, error)
	CountByCurrency(ctx context.Context, currencyID int64) (int64, error)
	// Delete removes the account; descendant accounts cascade with it inside
	// one atomic unit. Implementations return domain.ErrReferentialBlock when
	// a transaction entry still references the account or a descendant.
	Delete(ctx context.Context, id int64) error
}
