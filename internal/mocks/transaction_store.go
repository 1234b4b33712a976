package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// MockTransactionStore implements store.TransactionStore for testing
type MockTransactionStore struct {
	// Function fields for customizable behavior
	AppendFn            func(ctx context.Context, tx *domain.Transaction) error
	ListByAccountFn     func(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error)
	GetByIDAndAccountFn func(ctx context.Context, id, accountID uuid.UUID) (*domain.Transaction, error)

	// Data for default implementation
	mu      sync.Mutex
	Entries []domain.Transaction
}

var _ store.TransactionStore = (*MockTransactionStore)(nil)

// NewMockTransactionStore creates a new mock store with initialized defaults
func NewMockTransactionStore() *MockTransactionStore {
	return &MockTransactionStore{}
}

// Append implements the TransactionStore interface
func (m *MockTransactionStore) Append(ctx context.Context, tx *domain.Transaction) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, tx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, *tx)
	return nil
}

// ListByAccount implements the TransactionStore interface
func (m *MockTransactionStore) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error) {
	if m.ListByAccountFn != nil {
		return m.ListByAccountFn(ctx, accountID, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []domain.Transaction
	for _, tx := range m.Entries {
		if tx.AccountID == accountID {
			entries = append(entries, tx)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Dated.After(entries[j].Dated)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetByIDAndAccount implements the TransactionStore interface
func (m *MockTransactionStore) GetByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*domain.Transaction, error) {
	if m.GetByIDAndAccountFn != nil {
		return m.GetByIDAndAccountFn(ctx, id, accountID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range m.Entries {
		if tx.ID == id && tx.AccountID == accountID {
			copied := tx
			return &copied, nil
		}
	}
	return nil, store.ErrTransactionNotFound
}
