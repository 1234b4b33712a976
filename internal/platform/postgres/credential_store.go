package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// CredentialStore implements store.CredentialStore using PostgreSQL.
type CredentialStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCredentialStore creates a PostgreSQL implementation of the
// CredentialStore interface. The connection is initialized and managed by
// the caller. If logger is nil, the default logger is used.
func NewCredentialStore(db store.DBTX, logger *slog.Logger) *CredentialStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CredentialStore{
		db:     db,
		logger: logger.With(slog.String("component", "credential_store")),
	}
}

// Ensure CredentialStore implements store.CredentialStore
var _ store.CredentialStore = (*CredentialStore)(nil)

// Create implements store.CredentialStore.Create
func (s *CredentialStore) Create(ctx context.Context, cred *domain.Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO credentials (id, correlation_id, email, hashed_password, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		cred.ID, cred.CorrelationID, cred.Email, cred.HashedPassword, cred.CreatedAt)
	if err != nil {
		return MapUniqueViolation(err, store.ErrEmailExists)
	}

	s.logger.DebugContext(ctx, "credential created",
		"credential_id", cred.ID,
		"correlation_id", cred.CorrelationID)
	return nil
}

// GetByEmail implements store.CredentialStore.GetByEmail
func (s *CredentialStore) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	query := `
		SELECT id, correlation_id, email, hashed_password, created_at
		FROM credentials
		WHERE email = $1`

	return s.scanCredential(s.db.QueryRowContext(ctx, query, email))
}

// GetByCorrelationID implements store.CredentialStore.GetByCorrelationID
func (s *CredentialStore) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Credential, error) {
	query := `
		SELECT id, correlation_id, email, hashed_password, created_at
		FROM credentials
		WHERE correlation_id = $1`

	return s.scanCredential(s.db.QueryRowContext(ctx, query, correlationID))
}

// Delete implements store.CredentialStore.Delete
func (s *CredentialStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCredentialNotFound)
}

func (s *CredentialStore) scanCredential(row *sql.Row) (*domain.Credential, error) {
	var cred domain.Credential
	err := row.Scan(&cred.ID, &cred.CorrelationID, &cred.Email, &cred.HashedPassword, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCredentialNotFound
		}
		return nil, MapError(err)
	}
	return &cred, nil
}
