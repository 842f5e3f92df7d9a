package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/bookkeeper/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bookkeeper/src/internal/domain"
	"github.com/api-sage/bookkeeper/src/internal/logger"
	"github.com/api-sage/bookkeeper/src/internal/usecase/service_interfaces"
)

// Verify that AccountService implements the service_interfaces.AccountService interface
var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	currencyRepo repo_interfaces.CurrencyRepository
	ledgerRepo   repo_interfaces.LedgerRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	currencyRepo repo_interfaces.CurrencyRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		ledgerRepo:   ledgerRepo,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, params service_interfaces.AccountParams) (domain.Account, error) {
	logger.Info("account service create request", logger.Fields{
		"name":     params.Name,
		"acctType": params.AcctType,
	})

	account := domain.Account{
		Name:        strings.TrimSpace(params.Name),
		CurrencyID:  params.CurrencyID,
		AcctType:    params.AcctType,
		Description: params.Description,
		ParentID:    params.ParentID,
		Placeholder: params.Placeholder,
	}

	if err := s.validateAccount(ctx, account); err != nil {
		logger.Error("account service create validation failed", err, logger.Fields{
			"name": params.Name,
		})
		return domain.Account{}, err
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create failed", err, logger.Fields{
			"name": params.Name,
		})
		return domain.Account{}, err
	}

	logger.Info("account service create success", logger.Fields{
		"accountId": created.ID,
		"name":      created.Name,
	})

	return created, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, id int64, params service_interfaces.AccountParams) (domain.Account, error) {
	logger.Info("account service update request", logger.Fields{
		"accountId": id,
	})

	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if name := strings.TrimSpace(params.Name); name != "" {
		account.Name = name
	}
	if params.CurrencyID != 0 {
		account.CurrencyID = params.CurrencyID
	}
	if params.AcctType != "" {
		account.AcctType = params.AcctType
	}
	account.Description = params.Description
	account.ParentID = params.ParentID
	account.Placeholder = params.Placeholder

	// Validation is identical for create and update; re-parenting after
	// creation is the principal cycle risk.
	if err := s.validateAccount(ctx, account); err != nil {
		logger.Error("account service update validation failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, err
	}

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		logger.Error("account service update failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, err
	}

	logger.Info("account service update success", logger.Fields{
		"accountId": updated.ID,
		"name":      updated.Name,
	})

	return updated, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	logger.Info("account service delete request", logger.Fields{
		"accountId": id,
	})

	if _, err := s.GetAccount(ctx, id); err != nil {
		return err
	}

	subtree, err := s.subtreeIDs(ctx, id)
	if err != nil {
		return err
	}

	referencing, err := s.ledgerRepo.CountByAccounts(ctx, subtree)
	if err != nil {
		return err
	}
	if referencing > 0 {
		logger.Info("account service delete blocked", logger.Fields{
			"accountId":   id,
			"referencing": referencing,
		})
		return fmt.Errorf("account subtree is referenced by %d entrie(s): %w", referencing, domain.ErrReferentialBlock)
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		logger.Error("account service delete failed", err, logger.Fields{
			"accountId": id,
		})
		return err
	}

	logger.Info("account service delete success", logger.Fields{
		"accountId": id,
		"deleted":   len(subtree),
	})

	return nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrUnknownAccount
		}
		return domain.Account{}, err
	}

	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.List(ctx)
}

func (s *AccountService) ListGrouped(ctx context.Context) (map[domain.AccountType][]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.GroupAccounts(accounts), nil
}

func (s *AccountService) validateAccount(ctx context.Context, account domain.Account) error {
	if account.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if !account.AcctType.Valid() {
		return fmt.Errorf("acct_type %q is not a valid account type: %w", account.AcctType, domain.ErrInvalidInput)
	}

	if _, err := s.currencyRepo.GetByID(ctx, account.CurrencyID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrUnknownCurrency
		}
		return err
	}

	return s.validateParentChain(ctx, account)
}

// validateParentChain walks parent links from the account's new parent to
// the root. Reaching the account itself is a cycle; the walk is bounded by
// the total account count so corrupt stored data cannot loop it forever.
func (s *AccountService) validateParentChain(ctx context.Context, account domain.Account) error {
	if account.ParentID == 0 {
		return nil
	}

	limit, err := s.accountRepo.Count(ctx)
	if err != nil {
		return err
	}

	current := account.ParentID
	for steps := int64(0); current != 0; steps++ {
		if account.ID != 0 && current == account.ID {
			return domain.ErrCycleDetected
		}
		if steps > limit {
			return domain.ErrCorruptHierarchy
		}

		parent, err := s.accountRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				if current == account.ParentID {
					// The direct parent must resolve; a missing node deeper
					// in the chain just terminates the walk.
					return domain.ErrUnknownAccount
				}
				return nil
			}
			return err
		}

		current = parent.ParentID
	}

	return nil
}

func (s *AccountService) subtreeIDs(ctx context.Context, rootID int64) ([]int64, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[int64][]int64, len(accounts))
	for _, account := range accounts {
		if account.ParentID != 0 {
			children[account.ParentID] = append(children[account.ParentID], account.ID)
		}
	}

	ids := []int64{rootID}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}

	return ids, nil
}
