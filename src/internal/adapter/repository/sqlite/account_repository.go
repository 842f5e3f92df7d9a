package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (name, currency_id, acct_type, description, parent_id, placeholder, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(
		ctx,
		query,
		account.Name,
		account.CurrencyID,
		account.AcctType,
		account.Description,
		nullableID(account.ParentID),
		account.Placeholder,
		now,
		now,
	)
	if err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", constraintError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Account{}, fmt.Errorf("create account id: %w", err)
	}

	account.ID = id
	account.CreatedAt = now
	account.UpdatedAt = now
	return account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET name = ?, currency_id = ?, acct_type = ?, description = ?, parent_id = ?, placeholder = ?, updated_at = ?
WHERE id = ?`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(
		ctx,
		query,
		account.Name,
		account.CurrencyID,
		account.AcctType,
		account.Description,
		nullableID(account.ParentID),
		account.Placeholder,
		now,
		account.ID,
	)
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account: %w", constraintError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	account.UpdatedAt = now
	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT id, name, currency_id, acct_type, description, parent_id, placeholder, created_at, updated_at
FROM accounts
WHERE id = ?`

	var account domain.Account
	var parentID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.CurrencyID,
		&account.AcctType,
		&account.Description,
		&parentID,
		&account.Placeholder,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	account.ParentID = parentID.Int64
	return account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `
SELECT id, name, currency_id, acct_type, description, parent_id, placeholder, created_at, updated_at
FROM accounts
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		var parentID sql.NullInt64
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.CurrencyID,
			&account.AcctType,
			&account.Description,
			&parentID,
			&account.Placeholder,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		account.ParentID = parentID.Int64
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return count, nil
}

func (r *AccountRepository) CountByCurrency(ctx context.Context, currencyID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE currency_id = ?`, currencyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts by currency: %w", err)
	}

	return count, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Entries on any account in the subtree block the whole delete, since
	// the subtree cascades with the root.
	const referencingQuery = `
WITH RECURSIVE subtree AS (
	SELECT id FROM accounts WHERE id = ?
	UNION ALL
	SELECT a.id FROM accounts a JOIN subtree s ON a.parent_id = s.id
)
SELECT COUNT(*) FROM transaction_entries WHERE account_id IN (SELECT id FROM subtree)`

	var referencing int64
	if err := tx.QueryRowContext(ctx, referencingQuery, id).Scan(&referencing); err != nil {
		return fmt.Errorf("count account references: %w", err)
	}
	if referencing > 0 {
		return domain.ErrReferentialBlock
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", constraintError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account: %w", err)
	}

	return nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
