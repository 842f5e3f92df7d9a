package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/bookkeeper/src/internal/domain"
	"github.com/api-sage/bookkeeper/src/internal/usecase/service_interfaces"
	"github.com/api-sage/bookkeeper/src/internal/usecase/services"
)

type ledgerFixture struct {
	env      *testEnv
	currency domain.Currency
	salary   domain.Account
	checking domain.Account
}

func newLedgerFixture(t *testing.T) ledgerFixture {
	t.Helper()
	env := newTestEnv(t)

	currency := env.mustCurrency(t, "USD", 2)
	salary := env.mustAccount(t, service_interfaces.AccountParams{
		Name:       "Salary",
		CurrencyID: currency.ID,
		AcctType:   domain.AccountTypeRevenue,
	})
	checking := env.mustAccount(t, service_interfaces.AccountParams{
		Name:       "Checking",
		CurrencyID: currency.ID,
		AcctType:   domain.AccountTypeAsset,
	})

	return ledgerFixture{env: env, currency: currency, salary: salary, checking: checking}
}

func TestLedgerServiceCreateValidationError(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil)

	_, _, err := svc.CreateTransaction(context.Background(), service_interfaces.TransactionParams{})
	if err == nil {
		t.Fatal("expected validation error for empty entry set")
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLedgerServiceCreateBalancedTransaction(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	detail, entries, err := f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "Paycheck",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00"), Memo: "August salary"},
			{AccountID: f.checking.ID, Amount: dec(t, "10.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotZero(t, detail.ID)
	assert.False(t, detail.XactDate.IsZero(), "transaction date defaults to now")

	stored, storedEntries, err := f.env.ledger.GetTransaction(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paycheck", stored.Description)
	require.Len(t, storedEntries, 2)
	requireDecimalEqual(t, dec(t, "0"), domain.SumEntries(storedEntries))
}

func TestLedgerServiceCreateQuantizesAmounts(t *testing.T) {
	f := newLedgerFixture(t)

	// -10.001 at two traded decimals stores as -10.00, and the offsetting
	// leg quantizes symmetrically, so the pair still balances.
	_, entries, err := f.env.ledger.CreateTransaction(context.Background(), service_interfaces.TransactionParams{
		Description: "Rounded",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.001")},
			{AccountID: f.checking.ID, Amount: dec(t, "10.001")},
		},
	})
	require.NoError(t, err)
	requireDecimalEqual(t, dec(t, "-10.00"), entries[0].Amount)
	requireDecimalEqual(t, dec(t, "10.00"), entries[1].Amount)
}

func TestLedgerServiceCreateImbalancedRejected(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, _, err := f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "Bad paycheck",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: f.checking.ID, Amount: dec(t, "1.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrImbalancedTransaction)

	// Nothing persisted: no header, no entries.
	_, _, err = f.env.ledger.GetTransaction(ctx, 1)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	for _, id := range []int64{f.salary.ID, f.checking.ID} {
		entries, err := f.env.ledger.EntriesByAccount(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestLedgerRepositoryVerifiesBalanceInsideAtomicUnit(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	// Bypass the service's fail-fast check: the repository must still refuse
	// to commit an imbalanced row set and roll the header back with it.
	_, _, err := f.env.ledgerRepo.CreateTransaction(ctx, domain.TransactionDetail{
		Description: "Bypassed",
		XactDate:    time.Now().UTC(),
	}, []domain.TransactionEntry{
		{AccountID: f.salary.ID, Amount: dec(t, "-10.00"), Price: dec(t, "1")},
		{AccountID: f.checking.ID, Amount: dec(t, "1.00"), Price: dec(t, "1")},
	})
	require.ErrorIs(t, err, domain.ErrImbalancedTransaction)

	entries, err := f.env.ledger.EntriesByAccount(ctx, f.salary.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedgerServiceDefaultPriceFromCurrency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	usd := env.mustCurrency(t, "USD", 2)

	price := dec(t, "2.00")
	gbp, err := env.currencies.CreateCurrency(ctx, service_interfaces.CurrencyParams{
		Symbol:       "GBP",
		CurrentPrice: &price,
	})
	require.NoError(t, err)

	checking := env.mustAccount(t, service_interfaces.AccountParams{
		Name:       "Checking",
		CurrencyID: usd.ID,
		AcctType:   domain.AccountTypeAsset,
	})
	ukSavings := env.mustAccount(t, service_interfaces.AccountParams{
		Name:       "UK Savings",
		CurrencyID: gbp.ID,
		AcctType:   domain.AccountTypeAsset,
	})

	// The GBP leg carries no explicit price, so it is valued at the
	// currency's current price: 1 × 2.00 offsets -2.00 × 1.
	_, entries, err := env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "Currency move",
		Entries: []service_interfaces.EntryParams{
			{AccountID: checking.ID, Amount: dec(t, "-2.00")},
			{AccountID: ukSavings.ID, Amount: dec(t, "1.00")},
		},
	})
	require.NoError(t, err)
	requireDecimalEqual(t, dec(t, "2.00"), entries[1].Price)
	requireDecimalEqual(t, dec(t, "0"), domain.SumEntries(entries))
}

func TestLedgerServiceMismatchedHeaderIDs(t *testing.T) {
	f := newLedgerFixture(t)

	_, _, err := f.env.ledger.CreateTransaction(context.Background(), service_interfaces.TransactionParams{
		Description: "Tagged",
		Entries: []service_interfaces.EntryParams{
			{TransactionID: 7, AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{TransactionID: 8, AccountID: f.checking.ID, Amount: dec(t, "10.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerServicePlaceholderAccountRejected(t *testing.T) {
	f := newLedgerFixture(t)

	group := f.env.mustAccount(t, service_interfaces.AccountParams{
		Name:        "Bank Accounts",
		CurrencyID:  f.currency.ID,
		AcctType:    domain.AccountTypeAsset,
		Placeholder: true,
	})

	_, _, err := f.env.ledger.CreateTransaction(context.Background(), service_interfaces.TransactionParams{
		Description: "Into placeholder",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: group.ID, Amount: dec(t, "10.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerServiceUnknownAccount(t *testing.T) {
	f := newLedgerFixture(t)

	_, _, err := f.env.ledger.CreateTransaction(context.Background(), service_interfaces.TransactionParams{
		Description: "Dangling",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: 999, Amount: dec(t, "10.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestLedgerServiceReplaceTransaction(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	detail, _, err := f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "Paycheck",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: f.checking.ID, Amount: dec(t, "10.00")},
		},
	})
	require.NoError(t, err)

	replaced, entries, err := f.env.ledger.ReplaceTransaction(ctx, detail.ID, service_interfaces.TransactionParams{
		Description: "Paycheck (corrected)",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-12.50")},
			{AccountID: f.checking.ID, Amount: dec(t, "12.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, detail.ID, replaced.ID)
	assert.Equal(t, "Paycheck (corrected)", replaced.Description)
	require.Len(t, entries, 2)

	_, storedEntries, err := f.env.ledger.GetTransaction(ctx, detail.ID)
	require.NoError(t, err)
	require.Len(t, storedEntries, 2)
	requireDecimalEqual(t, dec(t, "-12.50"), storedEntries[0].Amount)
}

func TestLedgerServiceReplaceAtomicOnImbalance(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	detail, _, err := f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "Paycheck",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: f.checking.ID, Amount: dec(t, "10.00")},
		},
	})
	require.NoError(t, err)

	_, _, err = f.env.ledger.ReplaceTransaction(ctx, detail.ID, service_interfaces.TransactionParams{
		Description: "Broken edit",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-12.50")},
			{AccountID: f.checking.ID, Amount: dec(t, "1.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrImbalancedTransaction)

	// The original entries survive the failed replace untouched.
	stored, storedEntries, err := f.env.ledger.GetTransaction(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paycheck", stored.Description)
	require.Len(t, storedEntries, 2)
	requireDecimalEqual(t, dec(t, "-10.00"), storedEntries[0].Amount)
	requireDecimalEqual(t, dec(t, "10.00"), storedEntries[1].Amount)
}

func TestLedgerServiceDeleteCascadesEntries(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	detail, _, err := f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "Paycheck",
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: f.checking.ID, Amount: dec(t, "10.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.env.ledger.DeleteTransaction(ctx, detail.ID))

	_, _, err = f.env.ledger.GetTransaction(ctx, detail.ID)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	entries, err := f.env.ledger.EntriesByAccount(ctx, f.salary.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Once the entries are gone the account is deletable again.
	require.NoError(t, f.env.accounts.DeleteAccount(ctx, f.salary.ID))
}

func TestLedgerServiceEntriesByAccountOrderedByDate(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	later := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	_, _, err := f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "March paycheck",
		Date:        later,
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-30.00")},
			{AccountID: f.checking.ID, Amount: dec(t, "30.00")},
		},
	})
	require.NoError(t, err)

	_, _, err = f.env.ledger.CreateTransaction(ctx, service_interfaces.TransactionParams{
		Description: "January paycheck",
		Date:        earlier,
		Entries: []service_interfaces.EntryParams{
			{AccountID: f.salary.ID, Amount: dec(t, "-10.00")},
			{AccountID: f.checking.ID, Amount: dec(t, "10.00")},
		},
	})
	require.NoError(t, err)

	entries, err := f.env.ledger.EntriesByAccount(ctx, f.checking.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "January paycheck", entries[0].XactDescription)
	assert.Equal(t, "March paycheck", entries[1].XactDescription)
	requireDecimalEqual(t, dec(t, "10.00"), entries[0].Amount)
}

func TestLedgerServiceEntriesByAccountUnknownAccount(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.env.ledger.EntriesByAccount(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrUnknownAccount)
}
