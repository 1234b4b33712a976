package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, card *domain.Card) error
	GetByNumberFn       func(ctx context.Context, number string) (*domain.Card, error)
	GetByIDAndAccountFn func(ctx context.Context, id, accountID uuid.UUID) (*domain.Card, error)
	ListByAccountFn     func(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error)
	DeleteFn            func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	mu    sync.Mutex
	Cards map[uuid.UUID]*domain.Card
}

var _ store.CardStore = (*MockCardStore)(nil)

// NewMockCardStore creates a new mock store with initialized defaults
func NewMockCardStore() *MockCardStore {
	return &MockCardStore{
		Cards: make(map[uuid.UUID]*domain.Card),
	}
}

// Create implements the CardStore interface
func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Cards {
		if existing.Number == card.Number {
			return store.ErrDuplicate
		}
	}

	copied := *card
	m.Cards[card.ID] = &copied
	return nil
}

// GetByNumber implements the CardStore interface
func (m *MockCardStore) GetByNumber(ctx context.Context, number string) (*domain.Card, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, card := range m.Cards {
		if card.Number == number {
			copied := *card
			return &copied, nil
		}
	}
	return nil, store.ErrCardNotFound
}

// GetByIDAndAccount implements the CardStore interface
func (m *MockCardStore) GetByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*domain.Card, error) {
	if m.GetByIDAndAccountFn != nil {
		return m.GetByIDAndAccountFn(ctx, id, accountID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.Cards[id]
	if !ok || card.AccountID != accountID {
		return nil, store.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

// ListByAccount implements the CardStore interface
func (m *MockCardStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error) {
	if m.ListByAccountFn != nil {
		return m.ListByAccountFn(ctx, accountID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var cards []domain.Card
	for _, card := range m.Cards {
		if card.AccountID == accountID {
			cards = append(cards, *card)
		}
	}
	return cards, nil
}

// Delete implements the CardStore interface
func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(m.Cards, id)
	return nil
}
