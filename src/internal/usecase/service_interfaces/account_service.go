package service_interfaces

import (
	"context"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type AccountParams struct {
	Name        string
	CurrencyID  int64
	AcctType    domain.AccountType
	Description string
	// ParentID of 0 makes the account top-level.
	ParentID    int64
	Placeholder bool
}

type AccountService interface {
	CreateAccount(ctx context.Context, params AccountParams) (domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, params AccountParams) (domain.Account, error)
	// DeleteAccount removes the account and all descendants, unless any
	// entry references the account or a descendant.
	DeleteAccount(ctx context.Context, id int64) error
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// ListGrouped returns the chart of accounts as one forest per account
	// class, nested by parent, reflecting current persisted state.
	ListGrouped(ctx context.Context) (map[domain.AccountType][]*domain.AccountNode, error)
}
