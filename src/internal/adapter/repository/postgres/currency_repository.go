package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type CurrencyRepository struct {
	db *sql.DB
}

func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) Create(ctx context.Context, currency domain.Currency) (domain.Currency, error) {
	const query = `
INSERT INTO currencies (
	full_name,
	symbol,
	current_price,
	fraction_traded
) VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		currency.FullName,
		currency.Symbol,
		currency.CurrentPrice,
		currency.FractionTraded,
	).Scan(&currency.ID, &currency.CreatedAt, &currency.UpdatedAt); err != nil {
		return domain.Currency{}, fmt.Errorf("create currency: %w", constraintError(err))
	}

	return currency, nil
}

func (r *CurrencyRepository) Update(ctx context.Context, currency domain.Currency) (domain.Currency, error) {
	const query = `
UPDATE currencies
SET full_name = $2,
    symbol = $3,
    current_price = $4,
    fraction_traded = $5,
    updated_at = NOW()
WHERE id = $1
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		currency.ID,
		currency.FullName,
		currency.Symbol,
		currency.CurrentPrice,
		currency.FractionTraded,
	).Scan(&currency.CreatedAt, &currency.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Currency{}, domain.ErrRecordNotFound
		}
		return domain.Currency{}, fmt.Errorf("update currency: %w", constraintError(err))
	}

	return currency, nil
}

func (r *CurrencyRepository) GetByID(ctx context.Context, id int64) (domain.Currency, error) {
	const query = `
SELECT id, full_name, symbol, current_price, fraction_traded, created_at, updated_at
FROM currencies
WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *CurrencyRepository) GetBySymbol(ctx context.Context, symbol string) (domain.Currency, error) {
	const query = `
SELECT id, full_name, symbol, current_price, fraction_traded, created_at, updated_at
FROM currencies
WHERE symbol = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, symbol))
}

func (r *CurrencyRepository) List(ctx context.Context) ([]domain.Currency, error) {
	const query = `
SELECT id, full_name, symbol, current_price, fraction_traded, created_at, updated_at
FROM currencies
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var currency domain.Currency
		if err := rows.Scan(
			&currency.ID,
			&currency.FullName,
			&currency.Symbol,
			&currency.CurrentPrice,
			&currency.FractionTraded,
			&currency.CreatedAt,
			&currency.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies = append(currencies, currency)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}

	return currencies, nil
}

func (r *CurrencyRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin delete currency: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var referencing int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE currency_id = $1`, id).Scan(&referencing); err != nil {
		return fmt.Errorf("count currency references: %w", err)
	}
	if referencing > 0 {
		return domain.ErrReferentialBlock
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM currencies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete currency: %w", constraintError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete currency rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete currency: %w", err)
	}

	return nil
}

func (r *CurrencyRepository) scanOne(row *sql.Row) (domain.Currency, error) {
	var currency domain.Currency
	if err := row.Scan(
		&currency.ID,
		&currency.FullName,
		&currency.Symbol,
		&currency.CurrentPrice,
		&currency.FractionTraded,
		&currency.CreatedAt,
		&currency.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Currency{}, domain.ErrRecordNotFound
		}
		return domain.Currency{}, fmt.Errorf("get currency: %w", err)
	}

	return currency, nil
}
