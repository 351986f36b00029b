// Package schema holds the declarative request validators. Each endpoint's
// input shape is parsed by one function returning a typed value or an error,
// keeping all shape checking out of the handler bodies.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/lsampaio/transactions-api/internal/domain"
)

// CreateTransactionBody is the validated shape of a create request.
type CreateTransactionBody struct {
	Title  string
	Amount float64
	Type   domain.Direction
}

// ParseCreateTransactionBody decodes and validates a create request body.
// title must be a string, amount a number, and type exactly "credit" or
// "debit"; all three are required.
func ParseCreateTransactionBody(r io.Reader) (CreateTransactionBody, error) {
	var raw struct {
		Title  *string          `json:"title"`
		Amount *float64         `json:"amount"`
		Type   domain.Direction `json:"type"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return CreateTransactionBody{}, fmt.Errorf("invalid request body: %w", err)
	}

	if raw.Title == nil {
		return CreateTransactionBody{}, errors.New("title is required")
	}
	if raw.Amount == nil {
		return CreateTransactionBody{}, errors.New("amount is required")
	}
	if !raw.Type.Valid() {
		return CreateTransactionBody{}, fmt.Errorf("type must be %q or %q", domain.Credit, domain.Debit)
	}

	return CreateTransactionBody{
		Title:  *raw.Title,
		Amount: *raw.Amount,
		Type:   raw.Type,
	}, nil
}

// ParseIDParam validates that a path segment is a syntactically valid UUID
// and returns it in canonical form.
func ParseIDParam(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("id must be a valid UUID: %w", err)
	}
	return id.String(), nil
}
