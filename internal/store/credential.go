package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
)

// CredentialStore defines the interface for credential persistence. This is
// the only store the registration orchestrator writes to directly; profile
// and account stores belong to their own services.
type CredentialStore interface {
	// Create saves a new credential to the store.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain Credential if data is invalid.
	Create(ctx context.Context, cred *domain.Credential) error

	// GetByEmail retrieves a credential by its email address.
	// Returns ErrCredentialNotFound if it does not exist.
	// The returned credential carries the password hash, never the plaintext.
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)

	// GetByCorrelationID retrieves the credential created for a correlation ID.
	// Returns ErrCredentialNotFound if it does not exist.
	GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Credential, error)

	// Delete removes a credential by its ID. Used by saga compensation and
	// by account deletion.
	// Returns ErrCredentialNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
