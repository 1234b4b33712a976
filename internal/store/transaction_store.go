package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
)

// TransactionStore defines the interface for the append-only ledger, owned
// by the transactions service. Entries are never updated or deleted.
type TransactionStore interface {
	// Append writes a new ledger entry.
	// Returns validation errors from the domain Transaction if data is invalid.
	Append(ctx context.Context, tx *domain.Transaction) error

	// ListByAccount returns the account's entries ordered by Dated descending.
	// limit <= 0 means no limit.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error)

	// GetByIDAndAccount retrieves a single entry, scoped to the account.
	// Returns ErrTransactionNotFound if the entry does not exist or belongs
	// to a different account.
	GetByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*domain.Transaction, error)
}
