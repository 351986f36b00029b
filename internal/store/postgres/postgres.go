// Package postgres implements store.TransactionStore on a pgx connection
// pool. All queries are scoped by session_id; the delete is a single
// conditional statement so a zero affected-row count is the not-found signal.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lsampaio/transactions-api/internal/domain"
	"github.com/lsampaio/transactions-api/internal/store"
)

// Store is the pgxpool-backed transaction store.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool to databaseURL and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool owned by the caller.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, amount, session_id, created_at
		 FROM transactions
		 WHERE session_id = $1
		 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBySession: query: %w", err)
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.Title, &t.Amount, &t.SessionID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListBySession: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, sessionID, id string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, amount, session_id, created_at
		 FROM transactions
		 WHERE session_id = $1 AND id = $2`,
		sessionID, id,
	).Scan(&t.ID, &t.Title, &t.Amount, &t.SessionID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: query: %w", err)
	}
	return &t, nil
}

func (s *Store) Summarize(ctx context.Context, sessionID string) (store.Summary, error) {
	var sum store.Summary
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE session_id = $1`,
		sessionID,
	).Scan(&sum.Amount)
	if err != nil {
		return store.Summary{}, fmt.Errorf("Summarize: query: %w", err)
	}
	return sum, nil
}

func (s *Store) DeleteByID(ctx context.Context, sessionID, id string) error {
	ct, err := s.pool.Exec(ctx,
		`DELETE FROM transactions WHERE session_id = $1 AND id = $2`,
		sessionID, id,
	)
	if err != nil {
		return fmt.Errorf("DeleteByID: exec: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, tx *domain.Transaction) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO transactions (id, title, amount, session_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tx.ID, tx.Title, tx.Amount, tx.SessionID, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Insert: exec: %w", err)
	}
	return nil
}
