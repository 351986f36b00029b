// Package api assembles the route table and middleware chain.
package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lsampaio/transactions-api/internal/api/handlers"
	"github.com/lsampaio/transactions-api/internal/api/middleware"
	"github.com/lsampaio/transactions-api/internal/session"
	"github.com/lsampaio/transactions-api/internal/store"
)

// NewRouter wires the transaction endpoints over st and wraps them in the
// middleware chain. Every endpoint except create and health runs behind the
// session guard.
func NewRouter(st store.TransactionStore, log zerolog.Logger) http.Handler {
	transactionsHandler := handlers.NewTransactionsHandler(st, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", session.Guard(transactionsHandler.List))
	mux.HandleFunc("GET /summary", session.Guard(transactionsHandler.Summary))
	mux.HandleFunc("GET /{id}", session.Guard(transactionsHandler.Get))
	mux.HandleFunc("DELETE /{id}", session.Guard(transactionsHandler.Delete))
	mux.HandleFunc("POST /{$}", transactionsHandler.Create)

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)
}
