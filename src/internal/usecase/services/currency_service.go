package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/bookkeeper/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bookkeeper/src/internal/domain"
	"github.com/api-sage/bookkeeper/src/internal/logger"
	"github.com/api-sage/bookkeeper/src/internal/usecase/service_interfaces"
)

// Verify that CurrencyService implements the service_interfaces.CurrencyService interface
var _ service_interfaces.CurrencyService = (*CurrencyService)(nil)

const defaultFractionTraded = int32(2)

type CurrencyService struct {
	currencyRepo repo_interfaces.CurrencyRepository
	accountRepo  repo_interfaces.AccountRepository
}

func NewCurrencyService(
	currencyRepo repo_interfaces.CurrencyRepository,
	accountRepo repo_interfaces.AccountRepository,
) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
	}
}

func (s *CurrencyService) CreateCurrency(ctx context.Context, params service_interfaces.CurrencyParams) (domain.Currency, error) {
	logger.Info("currency service create request", logger.Fields{
		"symbol": params.Symbol,
	})

	symbol := strings.TrimSpace(params.Symbol)
	if symbol == "" {
		return domain.Currency{}, fmt.Errorf("symbol is required: %w", domain.ErrInvalidInput)
	}
	if params.FractionTraded != nil && *params.FractionTraded < 0 {
		return domain.Currency{}, fmt.Errorf("fraction traded must not be negative: %w", domain.ErrInvalidInput)
	}

	currency := domain.Currency{
		Symbol:         symbol,
		FullName:       strings.TrimSpace(params.FullName),
		CurrentPrice:   decimal.NewFromInt(1),
		FractionTraded: defaultFractionTraded,
	}
	if params.CurrentPrice != nil {
		currency.CurrentPrice = *params.CurrentPrice
	}
	if params.FractionTraded != nil {
		currency.FractionTraded = *params.FractionTraded
	}
	currency.Normalize()

	created, err := s.currencyRepo.Create(ctx, currency)
	if err != nil {
		logger.Error("currency service create failed", err, logger.Fields{
			"symbol": symbol,
		})
		return domain.Currency{}, err
	}

	logger.Info("currency service create success", logger.Fields{
		"currencyId": created.ID,
		"symbol":     created.Symbol,
	})

	return created, nil
}

func (s *CurrencyService) UpdateCurrency(ctx context.Context, id int64, params service_interfaces.CurrencyParams) (domain.Currency, error) {
	logger.Info("currency service update request", logger.Fields{
		"currencyId": id,
	})

	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Currency{}, err
	}

	if symbol := strings.TrimSpace(params.Symbol); symbol != "" {
		currency.Symbol = symbol
	}
	if fullName := strings.TrimSpace(params.FullName); fullName != "" {
		currency.FullName = fullName
	}
	if params.CurrentPrice != nil {
		currency.CurrentPrice = *params.CurrentPrice
	}
	if params.FractionTraded != nil {
		if *params.FractionTraded < 0 {
			return domain.Currency{}, fmt.Errorf("fraction traded must not be negative: %w", domain.ErrInvalidInput)
		}
		currency.FractionTraded = *params.FractionTraded
	}
	currency.Normalize()

	updated, err := s.currencyRepo.Update(ctx, currency)
	if err != nil {
		logger.Error("currency service update failed", err, logger.Fields{
			"currencyId": id,
		})
		return domain.Currency{}, err
	}

	logger.Info("currency service update success", logger.Fields{
		"currencyId": updated.ID,
		"symbol":     updated.Symbol,
	})

	return updated, nil
}

func (s *CurrencyService) DeleteCurrency(ctx context.Context, id int64) error {
	logger.Info("currency service delete request", logger.Fields{
		"currencyId": id,
	})

	referencing, err := s.accountRepo.CountByCurrency(ctx, id)
	if err != nil {
		return err
	}
	if referencing > 0 {
		logger.Info("currency service delete blocked", logger.Fields{
			"currencyId":  id,
			"referencing": referencing,
		})
		return fmt.Errorf("currency is referenced by %d account(s): %w", referencing, domain.ErrReferentialBlock)
	}

	if err := s.currencyRepo.Delete(ctx, id); err != nil {
		logger.Error("currency service delete failed", err, logger.Fields{
			"currencyId": id,
		})
		return err
	}

	logger.Info("currency service delete success", logger.Fields{
		"currencyId": id,
	})

	return nil
}

func (s *CurrencyService) GetCurrency(ctx context.Context, id int64) (domain.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Currency{}, domain.ErrUnknownCurrency
		}
		return domain.Currency{}, err
	}

	return currency, nil
}

func (s *CurrencyService) GetCurrencyBySymbol(ctx context.Context, symbol string) (domain.Currency, error) {
	currency, err := s.currencyRepo.GetBySymbol(ctx, strings.TrimSpace(symbol))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Currency{}, domain.ErrUnknownCurrency
		}
		return domain.Currency{}, err
	}

	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.List(ctx)
}

func (s *CurrencyService) QuantizeValue(ctx context.Context, currencyID int64, value decimal.Decimal) (decimal.Decimal, error) {
	currency, err := s.GetCurrency(ctx, currencyID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return currency.Quantize(value), nil
}
