package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
)

// AccountStore defines the interface for account persistence, owned by the
// accounts service. Balance changes go through SetBalance and DebitBalance
// only; history lives in the ledger.
type AccountStore interface {
	// Create saves a new account.
	// Returns ErrAccountExists if the correlation ID already has one.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByCVU retrieves an account by its CVU.
	// Returns ErrAccountNotFound if it does not exist.
	GetByCVU(ctx context.Context, cvu string) (*domain.Account, error)

	// GetByCorrelationID retrieves the account created for a correlation ID.
	// Returns ErrAccountNotFound if it does not exist.
	GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Account, error)

	// SetBalance overwrites the account balance with the given value.
	// Used for credits and for restoring a pre-mutation balance.
	// Returns ErrAccountNotFound if the account does not exist.
	SetBalance(ctx context.Context, id uuid.UUID, balance int64) error

	// DebitBalance subtracts amount from the balance, guarding against a
	// negative result in the same statement.
	// Returns domain.ErrInsufficientFunds if the balance would go negative,
	// ErrAccountNotFound if the account does not exist.
	DebitBalance(ctx context.Context, id uuid.UUID, amount int64) error

	// UpdateDetails changes the mutable alias and currency fields.
	// Returns ErrAccountNotFound if the account does not exist.
	UpdateDetails(ctx context.Context, id uuid.UUID, alias, currency string) error

	// Delete removes an account by its ID. Used by saga compensation.
	// Returns ErrAccountNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
