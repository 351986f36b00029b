package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lsampaio/transactions-api/internal/api/middleware"
	"github.com/lsampaio/transactions-api/internal/api/schema"
	"github.com/lsampaio/transactions-api/internal/domain"
	"github.com/lsampaio/transactions-api/internal/session"
	"github.com/lsampaio/transactions-api/internal/store"
)

// TransactionsHandler serves the transaction endpoints. Guarded endpoints run
// behind session.Guard and can assume a session cookie is present.
type TransactionsHandler struct {
	store store.TransactionStore
	log   zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(st store.TransactionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		store: st,
		log:   log,
	}
}

// List handles GET /
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := session.FromRequest(r)

	transactions, err := h.store.ListBySession(ctx, sessionID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
	})
}

// Get handles GET /{id}
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := schema.ParseIDParam(r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Scoping by session means a foreign id resolves to null, never to
	// another session's row.
	transaction, err := h.store.GetByID(ctx, session.FromRequest(r), id)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transaction": transaction,
	})
}

// Summary handles GET /summary
func (h *TransactionsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.store.Summarize(ctx, session.FromRequest(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to summarize transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to summarize transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
	})
}

// Delete handles DELETE /{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := schema.ParseIDParam(r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.store.DeleteByID(ctx, session.FromRequest(r), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteJSON(w, http.StatusNotFound, map[string]string{
			"message": "Transaction not found",
		})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Create handles POST /. It is the only unguarded endpoint: a request with no
// session cookie gets a fresh session issued alongside the created row.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := schema.ParseCreateTransactionBody(r.Body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID, issued := session.Resolve(session.FromRequest(r))
	if issued {
		http.SetCookie(w, session.NewCookie(sessionID))
	}

	transaction := &domain.Transaction{
		ID:        uuid.NewString(),
		Title:     body.Title,
		Amount:    body.Type.SignedAmount(body.Amount),
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Insert(ctx, transaction); err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	w.WriteHeader(http.StatusCreated)
}
