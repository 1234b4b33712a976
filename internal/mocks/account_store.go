package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// MockAccountStore implements store.AccountStore for testing
type MockAccountStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, account *domain.Account) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByCVUFn           func(ctx context.Context, cvu string) (*domain.Account, error)
	GetByCorrelationIDFn func(ctx context.Context, correlationID uuid.UUID) (*domain.Account, error)
	SetBalanceFn         func(ctx context.Context, id uuid.UUID, balance int64) error
	DebitBalanceFn       func(ctx context.Context, id uuid.UUID, amount int64) error
	UpdateDetailsFn      func(ctx context.Context, id uuid.UUID, alias, currency string) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	mu       sync.Mutex
	Accounts map[uuid.UUID]*domain.Account
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// NewMockAccountStore creates a new mock store with initialized defaults
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		Accounts: make(map[uuid.UUID]*domain.Account),
	}
}

// Add stores an account directly, bypassing duplicate checks. Test setup
// helper.
func (m *MockAccountStore) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.Accounts[account.ID] = &copied
}

// Create implements the AccountStore interface
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Accounts {
		if existing.CorrelationID == account.CorrelationID {
			return store.ErrAccountExists
		}
	}

	copied := *account
	m.Accounts[account.ID] = &copied
	return nil
}

// GetByID implements the AccountStore interface
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.Accounts[id]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

// GetByCVU implements the AccountStore interface
func (m *MockAccountStore) GetByCVU(ctx context.Context, cvu string) (*domain.Account, error) {
	if m.GetByCVUFn != nil {
		return m.GetByCVUFn(ctx, cvu)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.Accounts {
		if account.CVU == cvu {
			copied := *account
			return &copied, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// GetByCorrelationID implements the AccountStore interface
func (m *MockAccountStore) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Account, error) {
	if m.GetByCorrelationIDFn != nil {
		return m.GetByCorrelationIDFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.Accounts {
		if account.CorrelationID == correlationID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// SetBalance implements the AccountStore interface
func (m *MockAccountStore) SetBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	if m.SetBalanceFn != nil {
		return m.SetBalanceFn(ctx, id, balance)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.Accounts[id]
	if !ok {
		return store.ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

// DebitBalance implements the AccountStore interface
func (m *MockAccountStore) DebitBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if m.DebitBalanceFn != nil {
		return m.DebitBalanceFn(ctx, id, amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.Accounts[id]
	if !ok {
		return store.ErrAccountNotFound
	}
	if account.Balance < amount {
		return domain.ErrInsufficientFunds
	}
	account.Balance -= amount
	return nil
}

// UpdateDetails implements the AccountStore interface
func (m *MockAccountStore) UpdateDetails(ctx context.Context, id uuid.UUID, alias, currency string) error {
	if m.UpdateDetailsFn != nil {
		return m.UpdateDetailsFn(ctx, id, alias, currency)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.Accounts[id]
	if !ok {
		return store.ErrAccountNotFound
	}
	if alias != "" {
		account.Alias = alias
	}
	if currency != "" {
		account.Currency = currency
	}
	return nil
}

// Delete implements the AccountStore interface
func (m *MockAccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Accounts[id]; !ok {
		return store.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}
