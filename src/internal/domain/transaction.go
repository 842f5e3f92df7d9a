package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDetail is the transaction header. It exclusively owns its
// entries: deleting the detail deletes every entry posted under it.
type TransactionDetail struct {
	ID          int64
	Description string
	XactDate    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionEntry is a single signed posting against one account. Amount
// and Price are stored quantized to the precision of the entry account's
// currency, and for one header the sum of Amount×Price over all entries is
// exactly zero.
type TransactionEntry struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	Memo          string
	// Price is the unit price the amount is valued at, enabling
	// multi-currency and multi-asset postings. Defaults to the account
	// currency's current price.
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Value is the entry's contribution to the header's balance.
func (e TransactionEntry) Value() decimal.Decimal {
	return e.Amount.Mul(e.Price)
}

// SumEntries computes the balance of an entry set with exact decimal
// arithmetic. Binary floats never enter the computation.
func SumEntries(entries []TransactionEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, entry := range entries {
		sum = sum.Add(entry.Value())
	}
	return sum
}

// AccountEntry is a transaction entry joined with its header's date and
// description, for account history views ordered by header date.
type AccountEntry struct {
	TransactionEntry
	XactDate        time.Time
	XactDescription string
}
