package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) CreateTransaction(ctx context.Context, detail domain.TransactionDetail, entries []domain.TransactionEntry) (domain.TransactionDetail, []domain.TransactionEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("begin create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	result, err := tx.ExecContext(
		ctx,
		`INSERT INTO transaction_details (description, xact_date, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		detail.Description,
		detail.XactDate,
		now,
		now,
	)
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("create transaction detail: %w", err)
	}

	detail.ID, err = result.LastInsertId()
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("create transaction detail id: %w", err)
	}
	detail.CreatedAt = now
	detail.UpdatedAt = now

	inserted, err := insertEntries(ctx, tx, detail.ID, entries)
	if err != nil {
		return domain.TransactionDetail{}, nil, err
	}

	if err := verifyBalance(ctx, tx, detail.ID); err != nil {
		return domain.TransactionDetail{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("commit create transaction: %w", err)
	}

	return detail, inserted, nil
}

func (r *LedgerRepository) ReplaceTransaction(ctx context.Context, detail domain.TransactionDetail, entries []domain.TransactionEntry) (domain.TransactionDetail, []domain.TransactionEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("begin replace transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	result, err := tx.ExecContext(
		ctx,
		`UPDATE transaction_details SET description = ?, xact_date = ?, updated_at = ? WHERE id = ?`,
		detail.Description,
		detail.XactDate,
		now,
		detail.ID,
	)
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("update transaction detail: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("update transaction detail rows affected: %w", err)
	}
	if affected == 0 {
		return domain.TransactionDetail{}, nil, domain.ErrRecordNotFound
	}
	detail.UpdatedAt = now

	// Old entries are removed inside the same unit as the balance
	// verification, so an imbalanced replacement rolls back to the original
	// entry set.
	if _, err := tx.ExecContext(ctx, `DELETE FROM transaction_entries WHERE transaction_id = ?`, detail.ID); err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("delete old entries: %w", err)
	}

	inserted, err := insertEntries(ctx, tx, detail.ID, entries)
	if err != nil {
		return domain.TransactionDetail{}, nil, err
	}

	if err := verifyBalance(ctx, tx, detail.ID); err != nil {
		return domain.TransactionDetail{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("commit replace transaction: %w", err)
	}

	return detail, inserted, nil
}

func (r *LedgerRepository) DeleteTransaction(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transaction_details WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *LedgerRepository) GetTransaction(ctx context.Context, id int64) (domain.TransactionDetail, []domain.TransactionEntry, error) {
	var detail domain.TransactionDetail
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT id, description, xact_date, created_at, updated_at FROM transaction_details WHERE id = ?`,
		id,
	).Scan(
		&detail.ID,
		&detail.Description,
		&detail.XactDate,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.TransactionDetail{}, nil, domain.ErrRecordNotFound
		}
		return domain.TransactionDetail{}, nil, fmt.Errorf("get transaction detail: %w", err)
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, transaction_id, account_id, memo, price, amount FROM transaction_entries WHERE transaction_id = ? ORDER BY id`,
		id,
	)
	if err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("get transaction entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TransactionEntry
	for rows.Next() {
		var entry domain.TransactionEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TransactionID,
			&entry.AccountID,
			&entry.Memo,
			&entry.Price,
			&entry.Amount,
		); err != nil {
			return domain.TransactionDetail{}, nil, fmt.Errorf("scan transaction entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return domain.TransactionDetail{}, nil, fmt.Errorf("get transaction entries: %w", err)
	}

	return detail, entries, nil
}

func (r *LedgerRepository) EntriesByAccount(ctx context.Context, accountID int64) ([]domain.AccountEntry, error) {
	const query = `
SELECT e.id, e.transaction_id, e.account_id, e.memo, e.price, e.amount, d.xact_date, d.description
FROM transaction_entries e
JOIN transaction_details d ON d.id = e.transaction_id
WHERE e.account_id = ?
ORDER BY d.xact_date, e.id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("entries by account: %w", err)
	}
	defer rows.Close()

	var entries []domain.AccountEntry
	for rows.Next() {
		var entry domain.AccountEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TransactionID,
			&entry.AccountID,
			&entry.Memo,
			&entry.Price,
			&entry.Amount,
			&entry.XactDate,
			&entry.XactDescription,
		); err != nil {
			return nil, fmt.Errorf("scan account entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entries by account: %w", err)
	}

	return entries, nil
}

func (r *LedgerRepository) CountByAccounts(ctx context.Context, accountIDs []int64) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(accountIDs)), ",")
	query := fmt.Sprintf(`SELECT COUNT(*) FROM transaction_entries WHERE account_id IN (%s)`, placeholders)

	args := make([]any, 0, len(accountIDs))
	for _, id := range accountIDs {
		args = append(args, id)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries by accounts: %w", err)
	}

	return count, nil
}

func insertEntries(ctx context.Context, tx *sql.Tx, transactionID int64, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	const query = `
INSERT INTO transaction_entries (transaction_id, account_id, memo, price, amount)
VALUES (?, ?, ?, ?, ?)`

	inserted := make([]domain.TransactionEntry, 0, len(entries))
	for _, entry := range entries {
		entry.TransactionID = transactionID
		result, err := tx.ExecContext(
			ctx,
			query,
			entry.TransactionID,
			entry.AccountID,
			entry.Memo,
			entry.Price,
			entry.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("create transaction entry: %w", constraintError(err))
		}

		entry.ID, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("create transaction entry id: %w", err)
		}
		inserted = append(inserted, entry)
	}

	return inserted, nil
}

// verifyBalance recomputes the entry sum from the rows visible inside the
// transaction, in decimal arithmetic on the Go side. SQLite cannot sum TEXT
// decimals exactly in SQL, so the Go-side sum is the only correct option
// here, and the postgres store does the same for parity.
func verifyBalance(ctx context.Context, tx *sql.Tx, transactionID int64) error {
	rows, err := tx.QueryContext(ctx, `SELECT amount, price FROM transaction_entries WHERE transaction_id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("verify balance: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amount, price decimal.Decimal
		if err := rows.Scan(&amount, &price); err != nil {
			return fmt.Errorf("verify balance scan: %w", err)
		}
		sum = sum.Add(amount.Mul(price))
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("verify balance: %w", err)
	}

	if !sum.IsZero() {
		return domain.ErrImbalancedTransaction
	}

	return nil
}
