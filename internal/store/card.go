package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
)

// CardStore defines the interface for card persistence, owned by the cards
// service. Card numbers are globally unique across accounts.
type CardStore interface {
	// Create saves a new card.
	// Returns ErrCardLinkedToAccount or ErrCardLinkedElsewhere when the
	// number is already registered (duplicate detection is the service's
	// job; the store only reports the generic ErrDuplicate on a race).
	Create(ctx context.Context, card *domain.Card) error

	// GetByNumber retrieves a card by its full normalized number.
	// Returns ErrCardNotFound if it does not exist.
	GetByNumber(ctx context.Context, number string) (*domain.Card, error)

	// GetByIDAndAccount retrieves a card scoped to the owning account.
	// Returns ErrCardNotFound if the card does not exist or belongs to a
	// different account.
	GetByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*domain.Card, error)

	// ListByAccount returns all cards linked to an account.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error)

	// Delete removes a card by its ID.
	// Returns ErrCardNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
