package domain

import "time"

type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists the closed set of account classes in display order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// Valid reports whether t is one of the five fixed account classes.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. Value is transferred to and
// from non-placeholder accounts through transaction entries.
type Account struct {
	ID          int64
	Name        string
	CurrencyID  int64
	AcctType    AccountType
	Description string
	// ParentID is the owning account, 0 = top-level.
	ParentID int64
	// Placeholder accounts exist only to group children and cannot receive
	// entries directly.
	Placeholder bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccountNode is an account with its direct children resolved, as produced
// by GroupAccounts.
type AccountNode struct {
	Account  Account
	Children []*AccountNode
}

// GroupAccounts builds the grouped, nested account forest from a flat slice.
// For each account class the result holds the top-level accounts of that
// class, each carrying its full subtree. Sibling order follows the input
// order, which repositories return as insertion order. The grouping is a
// single pass over a children-by-parent index; no per-node lookups.
func GroupAccounts(accounts []Account) map[AccountType][]*AccountNode {
	nodes := make(map[int64]*AccountNode, len(accounts))
	for _, acct := range accounts {
		nodes[acct.ID] = &AccountNode{Account: acct}
	}

	grouped := make(map[AccountType][]*AccountNode, len(AccountTypes))
	for _, acctType := range AccountTypes {
		grouped[acctType] = []*AccountNode{}
	}

	for _, acct := range accounts {
		node := nodes[acct.ID]
		if acct.ParentID == 0 {
			grouped[acct.AcctType] = append(grouped[acct.AcctType], node)
			continue
		}
		if parent, ok := nodes[acct.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	return grouped
}
