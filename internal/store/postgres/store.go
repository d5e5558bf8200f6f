// Package postgres reads previously imported transactions from PostgreSQL
// for duplicate detection.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/bankimport/internal/config"
	"github.com/JonMunkholm/bankimport/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const findTransactionsSQL = `
SELECT id::text, description, amount::text, date
FROM transactions
WHERE user_id = $1 AND account_id = $2 AND date BETWEEN $3 AND $4`

// querier is the subset of pgxpool.Pool used by Store.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store implements core.ExistingTransactionSource on a pgx pool.
type Store struct {
	db   querier
	pool *pgxpool.Pool
}

var _ core.ExistingTransactionSource = (*Store)(nil)

// New connects a pool using the database settings and verifies it with a ping.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: pool, pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// FindTransactions returns the account's transactions dated within [from, to].
func (s *Store) FindTransactions(ctx context.Context, userID, accountID string, from, to time.Time) ([]core.ExistingTransaction, error) {
	rows, err := s.db.Query(ctx, findTransactionsSQL, userID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query existing transactions: %w", err)
	}
	defer rows.Close()

	var out []core.ExistingTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read existing transactions: %w", err)
	}
	return out, nil
}

func scanTransaction(row pgx.Row) (core.ExistingTransaction, error) {
	var (
		tx     core.ExistingTransaction
		amount string
	)
	if err := row.Scan(&tx.ID, &tx.Description, &amount, &tx.Date); err != nil {
		return core.ExistingTransaction{}, fmt.Errorf("scan existing transaction: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return core.ExistingTransaction{}, fmt.Errorf("existing transaction %s: invalid amount %q: %w", tx.ID, amount, err)
	}
	tx.Amount = d
	return tx, nil
}
