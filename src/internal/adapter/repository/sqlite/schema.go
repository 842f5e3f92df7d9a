package sqlite

// schema mirrors the postgres migrations: same tables, same unique and
// referential constraints. Decimals are stored as TEXT and scanned through
// decimal.Decimal so no float64 touches a monetary value.
const schema = `
CREATE TABLE IF NOT EXISTS currencies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name TEXT NOT NULL,
	symbol TEXT NOT NULL UNIQUE,
	current_price TEXT NOT NULL DEFAULT '1',
	fraction_traded INTEGER NOT NULL DEFAULT 2 CHECK (fraction_traded >= 0),
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	currency_id INTEGER NOT NULL REFERENCES currencies(id) ON DELETE RESTRICT,
	acct_type TEXT NOT NULL CHECK (acct_type IN ('asset', 'liability', 'equity', 'revenue', 'expense')),
	description TEXT NOT NULL DEFAULT '',
	parent_id INTEGER REFERENCES accounts(id) ON DELETE CASCADE,
	placeholder INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_parent_id ON accounts(parent_id);
CREATE INDEX IF NOT EXISTS idx_accounts_currency_id ON accounts(currency_id);

CREATE TABLE IF NOT EXISTS transaction_details (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	xact_date TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transaction_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_id INTEGER NOT NULL REFERENCES transaction_details(id) ON DELETE CASCADE,
	account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
	memo TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '1',
	amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_transaction_id ON transaction_entries(transaction_id);
CREATE INDEX IF NOT EXISTS idx_entries_account_id ON transaction_entries(account_id);
`
