package service_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

// EntryParams is one drafted posting. A nil Price defaults to the current
// price of the account's currency. TransactionID is normally zero; when set,
// every entry in the draft must agree on it.
type EntryParams struct {
	TransactionID int64
	AccountID     int64
	Memo          string
	Amount        decimal.Decimal
	Price         *decimal.Decimal
}

// TransactionParams is a complete drafted transaction. The entry set must
// already be offsetting; partial drafts go through ExpandSimpleEntry first.
type TransactionParams struct {
	Description string
	// Date of the transaction; the zero value means now.
	Date    time.Time
	Entries []EntryParams
}

type LedgerService interface {
	CreateTransaction(ctx context.Context, params TransactionParams) (domain.TransactionDetail, []domain.TransactionEntry, error)
	// ReplaceTransaction is edit-as-replace: the header keeps its identity,
	// the entry set is replaced wholesale in one atomic unit.
	ReplaceTransaction(ctx context.Context, id int64, params TransactionParams) (domain.TransactionDetail, []domain.TransactionEntry, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransaction(ctx context.Context, id int64) (domain.TransactionDetail, []domain.TransactionEntry, error)
	// EntriesByAccount returns the account's history ordered by header date,
	// with amounts and prices re-quantized to the currency's current
	// precision at this read boundary.
	EntriesByAccount(ctx context.Context, accountID int64) ([]domain.AccountEntry, error)
}
