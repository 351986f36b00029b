// Package inmemory implements store.TransactionStore in process memory.
// It is safe for concurrent use and mirrors the postgres implementation's
// observable behavior; data is lost on restart. Tests and database-less
// local runs use it in place of a real store.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lsampaio/transactions-api/internal/domain"
	"github.com/lsampaio/transactions-api/internal/store"
)

// Store keeps rows in a map guarded by a RWMutex. Listing follows insertion
// order, matching the created_at ordering of the postgres store.
type Store struct {
	mu    sync.RWMutex
	rows  map[string]domain.Transaction
	order []string
}

// New creates an empty in-memory transaction store.
func New() *Store {
	return &Store{
		rows: make(map[string]domain.Transaction),
	}
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Transaction{}
	for _, id := range s.order {
		if row := s.rows[id]; row.SessionID == sessionID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, sessionID, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, exists := s.rows[id]
	if !exists || row.SessionID != sessionID {
		return nil, nil
	}

	// Return a copy to avoid external modifications
	rowCopy := row
	return &rowCopy, nil
}

func (s *Store) Summarize(ctx context.Context, sessionID string) (store.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum store.Summary
	for _, id := range s.order {
		if row := s.rows[id]; row.SessionID == sessionID {
			sum.Amount += row.Amount
		}
	}
	return sum, nil
}

func (s *Store) DeleteByID(ctx context.Context, sessionID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.rows[id]
	if !exists || row.SessionID != sessionID {
		return store.ErrNotFound
	}

	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, tx *domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[tx.ID]; !exists {
		s.order = append(s.order, tx.ID)
	}
	s.rows[tx.ID] = *tx
	return nil
}
