package services

import (
	"github.com/shopspring/decimal"

	"github.com/api-sage/bookkeeper/src/internal/usecase/service_interfaces"
)

// ExpandSimpleEntry turns a one-entry draft into a balanced pair by
// appending the negated amount against the selected account at price 1. The
// engine itself only accepts complete offsetting entry sets; this helper is
// the explicit home of the simple-transaction convenience a form layer
// offers. Both legs are assumed to be valued in the same currency — with
// mixed currencies the engine's balance verification rejects the draft.
func ExpandSimpleEntry(entries []service_interfaces.EntryParams, selectedAccountID int64) []service_interfaces.EntryParams {
	if len(entries) != 1 {
		return entries
	}

	one := decimal.NewFromInt(1)
	offset := service_interfaces.EntryParams{
		AccountID: selectedAccountID,
		Amount:    entries[0].Amount.Neg(),
		Price:     &one,
	}

	return append(entries, offset)
}
