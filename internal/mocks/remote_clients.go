package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/remote"
	"github.com/dmhouse/wallet-api/internal/store"
)

// MockProfilesClient implements remote.ProfilesClient for testing
type MockProfilesClient struct {
	// Function fields for customizable behavior
	CreateFn func(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	GetFn    func(ctx context.Context, correlationID uuid.UUID) (domain.Profile, error)
	UpdateFn func(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	DeleteFn func(ctx context.Context, correlationID uuid.UUID) error

	// Data for default implementation
	mu       sync.Mutex
	Profiles map[uuid.UUID]domain.Profile
}

var _ remote.ProfilesClient = (*MockProfilesClient)(nil)

// NewMockProfilesClient creates a new mock client with initialized defaults
func NewMockProfilesClient() *MockProfilesClient {
	return &MockProfilesClient{
		Profiles: make(map[uuid.UUID]domain.Profile),
	}
}

// Create implements the ProfilesClient interface
func (m *MockProfilesClient) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	profile.CreatedAt = time.Now().UTC()
	m.Profiles[profile.CorrelationID] = profile
	return profile, nil
}

// Get implements the ProfilesClient interface
func (m *MockProfilesClient) Get(ctx context.Context, correlationID uuid.UUID) (domain.Profile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.Profiles[correlationID]
	if !ok {
		return domain.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

// Update implements the ProfilesClient interface
func (m *MockProfilesClient) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, profile)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Profiles[profile.CorrelationID]; !ok {
		return domain.Profile{}, store.ErrNotFound
	}
	m.Profiles[profile.CorrelationID] = profile
	return profile, nil
}

// Delete implements the ProfilesClient interface
func (m *MockProfilesClient) Delete(ctx context.Context, correlationID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Profiles[correlationID]; !ok {
		return store.ErrNotFound
	}
	delete(m.Profiles, correlationID)
	return nil
}

// MockAccountsClient implements remote.AccountsClient for testing
type MockAccountsClient struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, correlationID uuid.UUID) (domain.Account, error)
	GetByCorrelationIDFn func(ctx context.Context, correlationID uuid.UUID) (domain.Account, error)
	DeleteFn             func(ctx context.Context, accountID uuid.UUID) error

	// Data for default implementation
	mu       sync.Mutex
	Accounts map[uuid.UUID]domain.Account
}

var _ remote.AccountsClient = (*MockAccountsClient)(nil)

// NewMockAccountsClient creates a new mock client with initialized defaults
func NewMockAccountsClient() *MockAccountsClient {
	return &MockAccountsClient{
		Accounts: make(map[uuid.UUID]domain.Account),
	}
}

// Create implements the AccountsClient interface
func (m *MockAccountsClient) Create(ctx context.Context, correlationID uuid.UUID) (domain.Account, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := domain.NewAccount(correlationID)
	if err != nil {
		return domain.Account{}, err
	}
	m.Accounts[account.ID] = *account
	return *account, nil
}

// GetByCorrelationID implements the AccountsClient interface
func (m *MockAccountsClient) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (domain.Account, error) {
	if m.GetByCorrelationIDFn != nil {
		return m.GetByCorrelationIDFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.Accounts {
		if account.CorrelationID == correlationID {
			return account, nil
		}
	}
	return domain.Account{}, store.ErrNotFound
}

// Delete implements the AccountsClient interface
func (m *MockAccountsClient) Delete(ctx context.Context, accountID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, accountID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Accounts[accountID]; !ok {
		return store.ErrNotFound
	}
	delete(m.Accounts, accountID)
	return nil
}

// MockLedgerClient implements remote.LedgerClient for testing
type MockLedgerClient struct {
	// Function fields for customizable behavior
	AppendFn       func(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	Last5Fn        func(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
	ActivityFn     func(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
	ActivityByIDFn func(ctx context.Context, accountID, transferenceID uuid.UUID) (domain.Transaction, error)

	// Data for default implementation
	mu      sync.Mutex
	Entries []domain.Transaction
}

var _ remote.LedgerClient = (*MockLedgerClient)(nil)

// NewMockLedgerClient creates a new mock client with initialized defaults
func NewMockLedgerClient() *MockLedgerClient {
	return &MockLedgerClient{}
}

// Append implements the LedgerClient interface
func (m *MockLedgerClient) Append(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, tx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Entries = append(m.Entries, tx)
	return tx, nil
}

// Last5 implements the LedgerClient interface
func (m *MockLedgerClient) Last5(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	if m.Last5Fn != nil {
		return m.Last5Fn(ctx, accountID)
	}
	return m.listByAccount(accountID, 5), nil
}

// Activity implements the LedgerClient interface
func (m *MockLedgerClient) Activity(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	if m.ActivityFn != nil {
		return m.ActivityFn(ctx, accountID)
	}
	return m.listByAccount(accountID, 0), nil
}

// ActivityByID implements the LedgerClient interface
func (m *MockLedgerClient) ActivityByID(ctx context.Context, accountID, transferenceID uuid.UUID) (domain.Transaction, error) {
	if m.ActivityByIDFn != nil {
		return m.ActivityByIDFn(ctx, accountID, transferenceID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range m.Entries {
		if tx.ID == transferenceID && tx.AccountID == accountID {
			return tx, nil
		}
	}
	return domain.Transaction{}, store.ErrNotFound
}

// listByAccount returns the account's entries newest first, capped at
// limit when limit > 0.
func (m *MockLedgerClient) listByAccount(accountID uuid.UUID, limit int) []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []domain.Transaction
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].AccountID == accountID {
			entries = append(entries, m.Entries[i])
			if limit > 0 && len(entries) == limit {
				break
			}
		}
	}
	return entries
}

// MockCardsClient implements remote.CardsClient for testing
type MockCardsClient struct {
	// Function fields for customizable behavior
	AddFn    func(ctx context.Context, accountID uuid.UUID, req remote.CardRequest) (remote.CardSummary, error)
	ListFn   func(ctx context.Context, accountID uuid.UUID) ([]remote.CardSummary, error)
	GetFn    func(ctx context.Context, accountID, cardID uuid.UUID) (remote.CardSummary, error)
	DeleteFn func(ctx context.Context, accountID, cardID uuid.UUID) error

	// Data for default implementation
	mu    sync.Mutex
	Cards map[uuid.UUID]remote.CardSummary
}

var _ remote.CardsClient = (*MockCardsClient)(nil)

// NewMockCardsClient creates a new mock client with initialized defaults
func NewMockCardsClient() *MockCardsClient {
	return &MockCardsClient{
		Cards: make(map[uuid.UUID]remote.CardSummary),
	}
}

// Add implements the CardsClient interface
func (m *MockCardsClient) Add(ctx context.Context, accountID uuid.UUID, req remote.CardRequest) (remote.CardSummary, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, accountID, req)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	card, err := domain.NewCard(accountID, req.Number, req.Expiration)
	if err != nil {
		return remote.CardSummary{}, err
	}
	summary := remote.CardSummary{
		ID:         card.ID,
		AccountID:  accountID,
		Number:     card.Masked(),
		Provider:   string(card.Provider),
		Expiration: card.Expiration,
		CreatedAt:  card.CreatedAt,
	}
	m.Cards[card.ID] = summary
	return summary, nil
}

// List implements the CardsClient interface
func (m *MockCardsClient) List(ctx context.Context, accountID uuid.UUID) ([]remote.CardSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, accountID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var cards []remote.CardSummary
	for _, card := range m.Cards {
		if card.AccountID == accountID {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// Get implements the CardsClient interface
func (m *MockCardsClient) Get(ctx context.Context, accountID, cardID uuid.UUID) (remote.CardSummary, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, accountID, cardID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.Cards[cardID]
	if !ok || card.AccountID != accountID {
		return remote.CardSummary{}, store.ErrNotFound
	}
	return card, nil
}

// Delete implements the CardsClient interface
func (m *MockCardsClient) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, accountID, cardID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.Cards[cardID]
	if !ok || card.AccountID != accountID {
		return store.ErrNotFound
	}
	delete(m.Cards, cardID)
	return nil
}
