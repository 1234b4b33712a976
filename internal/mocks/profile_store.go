package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// MockProfileStore implements store.ProfileStore for testing
type MockProfileStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, profile *domain.Profile) error
	GetByCorrelationIDFn func(ctx context.Context, correlationID uuid.UUID) (*domain.Profile, error)
	UpdateFn             func(ctx context.Context, profile *domain.Profile) error
	DeleteFn             func(ctx context.Context, correlationID uuid.UUID) error

	// Data for default implementation
	mu       sync.Mutex
	Profiles map[uuid.UUID]*domain.Profile
}

var _ store.ProfileStore = (*MockProfileStore)(nil)

// NewMockProfileStore creates a new mock store with initialized defaults
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// Create implements the ProfileStore interface
func (m *MockProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Profiles[profile.CorrelationID]; exists {
		return store.ErrDuplicate
	}
	for _, existing := range m.Profiles {
		if existing.DNI == profile.DNI {
			return store.ErrDNIExists
		}
	}

	copied := *profile
	m.Profiles[profile.CorrelationID] = &copied
	return nil
}

// GetByCorrelationID implements the ProfileStore interface
func (m *MockProfileStore) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Profile, error) {
	if m.GetByCorrelationIDFn != nil {
		return m.GetByCorrelationIDFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.Profiles[correlationID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

// Update implements the ProfileStore interface
func (m *MockProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, profile)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Profiles[profile.CorrelationID]; !ok {
		return store.ErrProfileNotFound
	}
	copied := *profile
	m.Profiles[profile.CorrelationID] = &copied
	return nil
}

// Delete implements the ProfileStore interface
func (m *MockProfileStore) Delete(ctx context.Context, correlationID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, correlationID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Profiles[correlationID]; !ok {
		return store.ErrProfileNotFound
	}
	delete(m.Profiles, correlationID)
	return nil
}
