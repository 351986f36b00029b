// Package store defines the persistence contract for transaction rows.
// Concrete implementations live in the postgres and inmemory subpackages.
package store

import (
	"context"
	"errors"

	"github.com/lsampaio/transactions-api/internal/domain"
)

// ErrNotFound reports that no row matched the (session, id) pair.
var ErrNotFound = errors.New("transaction not found")

// Summary is the aggregate over a session's transactions.
type Summary struct {
	Amount float64 `json:"amount"`
}

// TransactionStore is the persistence contract. Every read is scoped by the
// caller-supplied session identifier; Insert takes the session from the row
// itself. Connectivity failures propagate to the caller unretried.
type TransactionStore interface {
	// ListBySession returns all rows owned by the session.
	ListBySession(ctx context.Context, sessionID string) ([]domain.Transaction, error)

	// GetByID returns the row matching both session and id, or nil when no
	// such row exists for that session.
	GetByID(ctx context.Context, sessionID, id string) (*domain.Transaction, error)

	// Summarize sums the signed amounts for the session. An empty session
	// sums to zero.
	Summarize(ctx context.Context, sessionID string) (Summary, error)

	// DeleteByID removes the row matching both session and id in a single
	// conditional operation. Returns ErrNotFound when nothing matched.
	DeleteByID(ctx context.Context, sessionID, id string) error

	// Insert appends a new row.
	Insert(ctx context.Context, tx *domain.Transaction) error
}
