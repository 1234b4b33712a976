package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
)

// ProfileStore defines the interface for user-profile persistence, owned by
// the users service.
type ProfileStore interface {
	// Create saves a new profile.
	// Returns ErrDuplicate if the correlation ID already has a profile and
	// ErrDNIExists if the DNI is already registered.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByCorrelationID retrieves a profile by the registration correlation ID.
	// Returns ErrProfileNotFound if it does not exist.
	GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Profile, error)

	// Update replaces the mutable fields of an existing profile.
	// Returns ErrProfileNotFound if it does not exist.
	Update(ctx context.Context, profile *domain.Profile) error

	// Delete removes a profile by correlation ID. Used by saga compensation.
	// Returns ErrProfileNotFound if it does not exist.
	Delete(ctx context.Context, correlationID uuid.UUID) error
}
