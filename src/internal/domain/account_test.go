package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

func TestGroupAccountsBuildsForestPerType(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, Name: "Bank Accounts", AcctType: domain.AccountTypeAsset, Placeholder: true},
		{ID: 2, Name: "Example Bank 1", AcctType: domain.AccountTypeAsset, ParentID: 1},
		{ID: 3, Name: "Example Bank 2", AcctType: domain.AccountTypeAsset, ParentID: 1},
		{ID: 4, Name: "Dining", AcctType: domain.AccountTypeExpense},
		{ID: 5, Name: "Student Loans", AcctType: domain.AccountTypeLiability, Placeholder: true},
		{ID: 6, Name: "Loan A", AcctType: domain.AccountTypeLiability, ParentID: 5},
		{ID: 7, Name: "Salary", AcctType: domain.AccountTypeRevenue},
		{ID: 8, Name: "Other Income", AcctType: domain.AccountTypeRevenue},
		{ID: 9, Name: "Opening Balances", AcctType: domain.AccountTypeEquity},
	}

	grouped := domain.GroupAccounts(accounts)

	require.Len(t, grouped, 5)

	assets := grouped[domain.AccountTypeAsset]
	require.Len(t, assets, 1)
	assert.Equal(t, "Bank Accounts", assets[0].Account.Name)
	require.Len(t, assets[0].Children, 2)
	assert.Equal(t, "Example Bank 1", assets[0].Children[0].Account.Name)
	assert.Equal(t, "Example Bank 2", assets[0].Children[1].Account.Name)

	liabilities := grouped[domain.AccountTypeLiability]
	require.Len(t, liabilities, 1)
	require.Len(t, liabilities[0].Children, 1)
	assert.Equal(t, "Loan A", liabilities[0].Children[0].Account.Name)

	// Sibling order is insertion order.
	revenues := grouped[domain.AccountTypeRevenue]
	require.Len(t, revenues, 2)
	assert.Equal(t, "Salary", revenues[0].Account.Name)
	assert.Equal(t, "Other Income", revenues[1].Account.Name)

	require.Len(t, grouped[domain.AccountTypeExpense], 1)
	require.Len(t, grouped[domain.AccountTypeEquity], 1)
}

func TestGroupAccountsNestsDeepChains(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, Name: "Root", AcctType: domain.AccountTypeAsset},
		{ID: 2, Name: "Child", AcctType: domain.AccountTypeAsset, ParentID: 1},
		{ID: 3, Name: "Grandchild", AcctType: domain.AccountTypeAsset, ParentID: 2},
	}

	grouped := domain.GroupAccounts(accounts)

	assets := grouped[domain.AccountTypeAsset]
	require.Len(t, assets, 1)
	require.Len(t, assets[0].Children, 1)
	require.Len(t, assets[0].Children[0].Children, 1)
	assert.Equal(t, "Grandchild", assets[0].Children[0].Children[0].Account.Name)
}

func TestGroupAccountsEmptyTypesPresent(t *testing.T) {
	grouped := domain.GroupAccounts(nil)

	require.Len(t, grouped, 5)
	for _, acctType := range domain.AccountTypes {
		assert.Empty(t, grouped[acctType])
	}
}
