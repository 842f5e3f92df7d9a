package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bookkeeper/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bookkeeper/src/internal/domain"
	"github.com/api-sage/bookkeeper/src/internal/logger"
	"github.com/api-sage/bookkeeper/src/internal/usecase/service_interfaces"
)

// Verify that LedgerService implements the service_interfaces.LedgerService interface
var _ service_interfaces.LedgerService = (*LedgerService)(nil)

type LedgerService struct {
	ledgerRepo   repo_interfaces.LedgerRepository
	accountRepo  repo_interfaces.AccountRepository
	currencyRepo repo_interfaces.CurrencyRepository
}

func NewLedgerService(
	ledgerRepo repo_interfaces.LedgerRepository,
	accountRepo repo_interfaces.AccountRepository,
	currencyRepo repo_interfaces.CurrencyRepository,
) *LedgerService {
	return &LedgerService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
	}
}

func (s *LedgerService) CreateTransaction(ctx context.Context, params service_interfaces.TransactionParams) (domain.TransactionDetail, []domain.TransactionEntry, error) {
	logger.Info("ledger service create transaction request", logger.Fields{
		"description": params.Description,
		"entries":     len(params.Entries),
	})

	entries, err := s.buildEntries(ctx, params.Entries, 0)
	if err != nil {
		logger.Error("ledger service create transaction validation failed", err, nil)
		return domain.TransactionDetail{}, nil, err
	}

	// Fail fast before any write; the repository re-verifies inside the
	// atomic unit.
	if sum := domain.SumEntries(entries); !sum.IsZero() {
		logger.Info("ledger service create transaction imbalanced", logger.Fields{
			"sum": sum.String(),
		})
		return domain.TransactionDetail{}, nil, fmt.Errorf("entries sum to %s: %w", sum.String(), domain.ErrImbalancedTransaction)
	}

	detail := domain.TransactionDetail{
		Description: params.Description,
		XactDate:    params.Date,
	}
	if detail.XactDate.IsZero() {
		detail.XactDate = time.Now().UTC()
	}

	detail, entries, err = s.ledgerRepo.CreateTransaction(ctx, detail, entries)
	if err != nil {
		logger.Error("ledger service create transaction failed", err, nil)
		return domain.TransactionDetail{}, nil, err
	}

	logger.Info("ledger service create transaction success", logger.Fields{
		"transactionId": detail.ID,
		"entries":       len(entries),
	})

	return detail, entries, nil
}

func (s *LedgerService) ReplaceTransaction(ctx context.Context, id int64, params service_interfaces.TransactionParams) (domain.TransactionDetail, []domain.TransactionEntry, error) {
	logger.Info("ledger service replace transaction request", logger.Fields{
		"transactionId": id,
		"entries":       len(params.Entries),
	})

	existing, _, err := s.ledgerRepo.GetTransaction(ctx, id)
	if err != nil {
		return domain.TransactionDetail{}, nil, err
	}

	entries, err := s.buildEntries(ctx, params.Entries, id)
	if err != nil {
		logger.Error("ledger service replace transaction validation failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.TransactionDetail{}, nil, err
	}

	if sum := domain.SumEntries(entries); !sum.IsZero() {
		logger.Info("ledger service replace transaction imbalanced", logger.Fields{
			"transactionId": id,
			"sum":           sum.String(),
		})
		return domain.TransactionDetail{}, nil, fmt.Errorf("entries sum to %s: %w", sum.String(), domain.ErrImbalancedTransaction)
	}

	detail := domain.TransactionDetail{
		ID:          id,
		Description: params.Description,
		XactDate:    params.Date,
		CreatedAt:   existing.CreatedAt,
	}
	if detail.Description == "" {
		detail.Description = existing.Description
	}
	if detail.XactDate.IsZero() {
		detail.XactDate = existing.XactDate
	}

	detail, entries, err = s.ledgerRepo.ReplaceTransaction(ctx, detail, entries)
	if err != nil {
		logger.Error("ledger service replace transaction failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.TransactionDetail{}, nil, err
	}

	logger.Info("ledger service replace transaction success", logger.Fields{
		"transactionId": detail.ID,
		"entries":       len(entries),
	})

	return detail, entries, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	logger.Info("ledger service delete transaction request", logger.Fields{
		"transactionId": id,
	})

	if err := s.ledgerRepo.DeleteTransaction(ctx, id); err != nil {
		logger.Error("ledger service delete transaction failed", err, logger.Fields{
			"transactionId": id,
		})
		return err
	}

	logger.Info("ledger service delete transaction success", logger.Fields{
		"transactionId": id,
	})

	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id int64) (domain.TransactionDetail, []domain.TransactionEntry, error) {
	return s.ledgerRepo.GetTransaction(ctx, id)
}

func (s *LedgerService) EntriesByAccount(ctx context.Context, accountID int64) ([]domain.AccountEntry, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUnknownAccount
		}
		return nil, err
	}

	currency, err := s.currencyRepo.GetByID(ctx, account.CurrencyID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.EntriesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Stored rows are immutable snapshots; the currency's precision can have
	// changed since they were written, so they are re-quantized at this read
	// boundary.
	for i := range entries {
		entries[i].Amount = currency.Quantize(entries[i].Amount)
		entries[i].Price = currency.Quantize(entries[i].Price)
	}

	return entries, nil
}

// buildEntries resolves, defaults and quantizes a drafted entry set. The
// returned entries are ready for atomic persistence under one header.
func (s *LedgerService) buildEntries(ctx context.Context, params []service_interfaces.EntryParams, transactionID int64) ([]domain.TransactionEntry, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("at least one entry is required: %w", domain.ErrInvalidInput)
	}

	entries := make([]domain.TransactionEntry, 0, len(params))
	for _, param := range params {
		if param.TransactionID != 0 && param.TransactionID != transactionID {
			return nil, fmt.Errorf("entry is associated with transaction %d: %w", param.TransactionID, domain.ErrInvalidInput)
		}

		account, err := s.accountRepo.GetByID(ctx, param.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, fmt.Errorf("account %d: %w", param.AccountID, domain.ErrUnknownAccount)
			}
			return nil, err
		}
		if account.Placeholder {
			return nil, fmt.Errorf("account %q is a placeholder and cannot receive entries: %w", account.Name, domain.ErrInvalidInput)
		}

		currency, err := s.currencyRepo.GetByID(ctx, account.CurrencyID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, domain.ErrUnknownCurrency
			}
			return nil, err
		}

		price := currency.CurrentPrice
		if param.Price != nil {
			price = *param.Price
		}

		entries = append(entries, domain.TransactionEntry{
			TransactionID: transactionID,
			AccountID:     account.ID,
			Memo:          param.Memo,
			Price:         currency.Quantize(price),
			Amount:        currency.Quantize(param.Amount),
		})
	}

	return entries, nil
}
