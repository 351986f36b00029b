package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lsampaio/transactions-api/internal/domain"
	"github.com/lsampaio/transactions-api/internal/store"
)

func seed(t *testing.T, s *Store, rows ...domain.Transaction) {
	t.Helper()
	for i := range rows {
		if err := s.Insert(context.Background(), &rows[i]); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
}

func TestListBySession_ScopedAndOrdered(t *testing.T) {
	s := New()
	seed(t, s,
		domain.Transaction{ID: "t1", Title: "Salary", Amount: 5000, SessionID: "s1"},
		domain.Transaction{ID: "t2", Title: "Rent", Amount: -1200, SessionID: "s1"},
		domain.Transaction{ID: "t3", Title: "Other session", Amount: 99, SessionID: "s2"},
	)

	got, err := s.ListBySession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}

	want := []domain.Transaction{
		{ID: "t1", Title: "Salary", Amount: 5000, SessionID: "s1"},
		{ID: "t2", Title: "Rent", Amount: -1200, SessionID: "s1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListBySession mismatch (-want +got):\n%s", diff)
	}
}

func TestListBySession_EmptySession(t *testing.T) {
	s := New()

	got, err := s.ListBySession(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

func TestGetByID_CrossSessionIsolation(t *testing.T) {
	s := New()
	seed(t, s, domain.Transaction{ID: "t1", Title: "Salary", Amount: 5000, SessionID: "s1"})

	// The owning session sees the row.
	got, err := s.GetByID(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Title != "Salary" {
		t.Errorf("GetByID = %+v, want the Salary row", got)
	}

	// A foreign session gets the absence signal, not an error.
	got, err = s.GetByID(context.Background(), "s2", "t1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("foreign session saw %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	s := New()

	sum, err := s.Summarize(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.Amount != 0 {
		t.Errorf("empty session sum = %v, want 0", sum.Amount)
	}

	seed(t, s,
		domain.Transaction{ID: "t1", Amount: 5000, SessionID: "s1"},
		domain.Transaction{ID: "t2", Amount: -1200, SessionID: "s1"},
		domain.Transaction{ID: "t3", Amount: 77, SessionID: "s2"},
	)

	sum, err = s.Summarize(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.Amount != 3800 {
		t.Errorf("sum = %v, want 3800", sum.Amount)
	}
}

func TestDeleteByID(t *testing.T) {
	s := New()
	seed(t, s, domain.Transaction{ID: "t1", Amount: 10, SessionID: "s1"})

	// Foreign session cannot delete the row.
	if err := s.DeleteByID(context.Background(), "s2", "t1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}

	if err := s.DeleteByID(context.Background(), "s1", "t1"); err != nil {
		t.Fatalf("owned delete failed: %v", err)
	}

	got, err := s.GetByID(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("row still retrievable after delete: %+v", got)
	}

	// Deleting again reports not found.
	if err := s.DeleteByID(context.Background(), "s1", "t1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestInsert_RequiresID(t *testing.T) {
	s := New()
	if err := s.Insert(context.Background(), &domain.Transaction{SessionID: "s1"}); err == nil {
		t.Error("expected error for missing ID")
	}
}
