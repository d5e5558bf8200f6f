// Package sqlite keeps imported transactions in a local SQLite file and
// serves them to duplicate detection.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/bankimport/internal/core"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	account_id  TEXT NOT NULL,
	date        TEXT NOT NULL,
	amount      TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_transactions_account_date
	ON transactions (user_id, account_id, date);`

const findTransactionsSQL = `
SELECT id, description, amount, date
FROM transactions
WHERE user_id = ? AND account_id = ? AND date BETWEEN ? AND ?
ORDER BY date, id`

// Transaction is a row to insert.
type Transaction struct {
	ID          string
	UserID      string
	AccountID   string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// Store implements core.ExistingTransactionSource on a SQLite database.
type Store struct {
	conn *sql.DB
	path string
}

var _ core.ExistingTransactionSource = (*Store)(nil)

// Open opens (creating if needed) the database at path.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, busyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	return &Store{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Migrate creates the transactions table and its lookup index.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", s.path, err)
	}
	return nil
}

// Insert stores transactions in one database transaction.
func (s *Store) Insert(ctx context.Context, txns []Transaction) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, user_id, account_id, date, amount, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		if _, err := stmt.ExecContext(ctx, t.ID, t.UserID, t.AccountID,
			t.Date.Format(dateLayout), t.Amount.String(), t.Description); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// FindTransactions returns the account's transactions dated within [from, to].
func (s *Store) FindTransactions(ctx context.Context, userID, accountID string, from, to time.Time) ([]core.ExistingTransaction, error) {
	rows, err := s.conn.QueryContext(ctx, findTransactionsSQL,
		userID, accountID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.ExistingTransaction
	for rows.Next() {
		var (
			t               core.ExistingTransaction
			amount, dateCol string
		)
		if err := rows.Scan(&t.ID, &t.Description, &amount, &dateCol); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %s: invalid amount %q: %w", t.ID, amount, err)
		}
		if t.Date, err = time.Parse(dateLayout, dateCol); err != nil {
			return nil, fmt.Errorf("transaction %s: invalid date %q: %w", t.ID, dateCol, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
