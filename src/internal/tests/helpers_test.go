package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/bookkeeper/src/internal/adapter/repository/sqlite"
	"github.com/api-sage/bookkeeper/src/internal/domain"
	"github.com/api-sage/bookkeeper/src/internal/usecase/service_interfaces"
	"github.com/api-sage/bookkeeper/src/internal/usecase/services"
)

type testEnv struct {
	currencies *services.CurrencyService
	accounts   *services.AccountService
	ledger     *services.LedgerService
	ledgerRepo *sqlite.LedgerRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	currencyRepo := sqlite.NewCurrencyRepository(db)
	accountRepo := sqlite.NewAccountRepository(db)
	ledgerRepo := sqlite.NewLedgerRepository(db)

	return &testEnv{
		currencies: services.NewCurrencyService(currencyRepo, accountRepo),
		accounts:   services.NewAccountService(accountRepo, currencyRepo, ledgerRepo),
		ledger:     services.NewLedgerService(ledgerRepo, accountRepo, currencyRepo),
		ledgerRepo: ledgerRepo,
	}
}

func (e *testEnv) mustCurrency(t *testing.T, symbol string, fractionTraded int32) domain.Currency {
	t.Helper()

	currency, err := e.currencies.CreateCurrency(context.Background(), service_interfaces.CurrencyParams{
		Symbol:         symbol,
		FractionTraded: &fractionTraded,
	})
	require.NoError(t, err)
	return currency
}

func (e *testEnv) mustAccount(t *testing.T, params service_interfaces.AccountParams) domain.Account {
	t.Helper()

	account, err := e.accounts.CreateAccount(context.Background(), params)
	require.NoError(t, err)
	return account
}

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(raw)
}

func decPtr(t *testing.T, raw string) *decimal.Decimal {
	t.Helper()
	d := decimal.RequireFromString(raw)
	return &d
}

func requireDecimalEqual(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	require.True(t, want.Equal(got), "want %s, got %s", want, got)
}
