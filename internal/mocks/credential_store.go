package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// MockCredentialStore implements store.CredentialStore for testing
type MockCredentialStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, cred *domain.Credential) error
	GetByEmailFn         func(ctx context.Context, email string) (*domain.Credential, error)
	GetByCorrelationIDFn func(ctx context.Context, correlationID uuid.UUID) (*domain.Credential, error)
	DeleteFn             func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	mu          sync.Mutex
	Credentials map[uuid.UUID]*domain.Credential
}

var _ store.CredentialStore = (*MockCredentialStore)(nil)

// NewMockCredentialStore creates a new mock store with initialized defaults
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{
		Credentials: make(map[uuid.UUID]*domain.Credential),
	}
}

// Create implements the CredentialStore interface
func (m *MockCredentialStore) Create(ctx context.Context, cred *domain.Credential) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, cred)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Credentials {
		if existing.Email == cred.Email {
			return store.ErrEmailExists
		}
	}

	copied := *cred
	m.Credentials[cred.ID] = &copied
	return nil
}

// GetByEmail implements the CredentialStore interface
func (m *MockCredentialStore) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cred := range m.Credentials {
		if cred.Email == email {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, store.ErrCredentialNotFound
}

// GetByCorrelationID implements the CredentialStore interface
func (m *MockCredentialStore) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Credential, error) {
	if m.GetByCorrelationIDFn != nil {
		return m.GetByCorrelationIDFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cred := range m.Credentials {
		if cred.CorrelationID == correlationID {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, store.ErrCredentialNotFound
}

// Delete implements the CredentialStore interface
func (m *MockCredentialStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Credentials[id]; !ok {
		return fmt.Errorf("%w: credential %s", store.ErrCredentialNotFound, id)
	}
	delete(m.Credentials, id)
	return nil
}
