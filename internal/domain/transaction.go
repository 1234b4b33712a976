package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transaction validation errors
var (
	ErrEmptyTransactionID = errors.New("transaction ID cannot be empty")
	ErrEmptyOrigin        = errors.New("origin cannot be empty")
	ErrEmptyDestination   = errors.New("destination cannot be empty")
	ErrDescriptionTooLong = errors.New("description cannot exceed 255 characters")
	ErrAmountOverLimit    = errors.New("amount exceeds the per-transaction limit")
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionDeposit TransactionType = "DEPOSIT"
	TransactionCredit  TransactionType = "CREDIT"
	TransactionDebit   TransactionType = "DEBIT"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionCredit, TransactionDebit:
		return true
	}
	return false
}

// MaxTransactionAmount is the per-transaction ceiling, in minor units.
const MaxTransactionAmount int64 = 100_000_000 // 1,000,000.00

// ExternalOrigin marks money entering the wallet from outside.
const ExternalOrigin = "EXTERNAL_SOURCE"

// CardOrigin marks money entering the wallet from an associated card.
// Entries with this origin must carry the funding card's ID.
const CardOrigin = "CARD"

// maxDescriptionLength bounds the free-text description field.
const maxDescriptionLength = 255

// Transaction is an append-only ledger entry. Entries are never mutated or
// deleted once written; account history is the set of entries ordered by
// Dated descending.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Amount      int64           `json:"amount"`
	Dated       time.Time       `json:"dated"`
	Description string          `json:"description"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	CardID      string          `json:"card_id,omitempty"`
	Type        TransactionType `json:"type"`
}

// NewTransaction creates a ledger entry stamped with the current time.
// Returns an error if validation fails.
func NewTransaction(
	accountID uuid.UUID,
	amount int64,
	description, origin, destination, cardID string,
	txType TransactionType,
) (*Transaction, error) {
	tx := &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      amount,
		Dated:       time.Now().UTC(),
		Description: description,
		Origin:      origin,
		Destination: destination,
		CardID:      cardID,
		Type:        txType,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// Validate checks if the Transaction has valid data.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTransactionID
	}

	if t.AccountID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if t.Amount <= 0 {
		return ErrInvalidAmount
	}

	if t.Amount > MaxTransactionAmount {
		return ErrAmountOverLimit
	}

	if t.Origin == "" {
		return ErrEmptyOrigin
	}

	if t.Destination == "" {
		return ErrEmptyDestination
	}

	if len(t.Description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t.Type)
	}

	return nil
}
