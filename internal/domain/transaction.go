package domain

import (
	"time"
)

// Direction tags a transaction as credit or debit on input. It is never
// persisted: the sign of Amount is the only stored encoding. A debit of zero
// stays 0 and therefore reads back as a credit.
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Valid reports whether d is one of the two accepted directions.
func (d Direction) Valid() bool {
	return d == Credit || d == Debit
}

// SignedAmount collapses the direction into the stored amount: credits keep
// their value, debits are negated.
func (d Direction) SignedAmount(amount float64) float64 {
	if d == Debit {
		return amount * -1
	}
	return amount
}

// Transaction is one persisted row of the transactions table. CreatedAt is
// stamped on insert and used for stable listing; it is not part of the
// request contract.
type Transaction struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
