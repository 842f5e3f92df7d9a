package repo_interfaces

import (
	"context"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type LedgerRepository interface {
	// CreateTransaction persists the detail and its entries as one atomic
	// unit. The entry sum is re-verified over the persisted rows inside the
	// unit; on imbalance everything is rolled back and
	// domain.ErrImbalancedTransaction is returned.
	CreateTransaction(ctx context.Context, detail domain.TransactionDetail, entries []domain.TransactionEntry) (domain.TransactionDetail, []domain.TransactionEntry, error)
	// ReplaceTransaction updates the detail, deletes its existing entries and
	// inserts the replacement set in the same atomic unit as the balance
	// re-verification, so a failed verification leaves the original entries
	// untouched.
	ReplaceTransaction(ctx context.Context, detail domain.TransactionDetail, entries []domain.TransactionEntry) (domain.TransactionDetail, []domain.TransactionEntry, error)
	// DeleteTransaction removes the detail; its entries cascade with it.
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransaction(ctx context.Context, id int64) (domain.TransactionDetail, []domain.TransactionEntry, error)
	// EntriesByAccount returns the account's entries joined with header date
	// and description, ordered by header date.
	EntriesByAccount(ctx context.Context, accountID int64) ([]domain.AccountEntry, error)
	// CountByAccounts reports how many entries reference any of the given
	// accounts.
	CountByAccounts(ctx context.Context, accountIDs []int64) (int64, error)
}
