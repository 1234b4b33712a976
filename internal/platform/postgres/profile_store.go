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

// ProfileStore implements store.ProfileStore using PostgreSQL.
type ProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProfileStore creates a PostgreSQL implementation of the ProfileStore
// interface. If logger is nil, the default logger is used.
func NewProfileStore(db store.DBTX, logger *slog.Logger) *ProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure ProfileStore implements store.ProfileStore
var _ store.ProfileStore = (*ProfileStore)(nil)

// Create implements store.ProfileStore.Create
func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (correlation_id, first_name, last_name, dni, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		profile.CorrelationID, profile.FirstName, profile.LastName,
		profile.DNI, profile.Email, profile.Phone, profile.CreatedAt)
	if err != nil {
		var pgErr error = MapError(err)
		if IsUniqueViolation(err) {
			pgErr = disambiguateProfileConflict(err)
		}
		return pgErr
	}

	s.logger.DebugContext(ctx, "profile created", "correlation_id", profile.CorrelationID)
	return nil
}

// GetByCorrelationID implements store.ProfileStore.GetByCorrelationID
func (s *ProfileStore) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT correlation_id, first_name, last_name, dni, email, phone, created_at
		FROM profiles
		WHERE correlation_id = $1`

	var p domain.Profile
	err := s.db.QueryRowContext(ctx, query, correlationID).Scan(
		&p.CorrelationID, &p.FirstName, &p.LastName, &p.DNI, &p.Email, &p.Phone, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		return nil, MapError(err)
	}

	return &p, nil
}

// Update implements store.ProfileStore.Update
func (s *ProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET first_name = $2, last_name = $3, dni = $4, email = $5, phone = $6
		WHERE correlation_id = $1`

	result, err := s.db.ExecContext(ctx, query,
		profile.CorrelationID, profile.FirstName, profile.LastName,
		profile.DNI, profile.Email, profile.Phone)
	if err != nil {
		if IsUniqueViolation(err) {
			return disambiguateProfileConflict(err)
		}
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProfileNotFound)
}

// Delete implements store.ProfileStore.Delete
func (s *ProfileStore) Delete(ctx context.Context, correlationID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE correlation_id = $1`, correlationID)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProfileNotFound)
}

// disambiguateProfileConflict maps a unique violation on the profiles table
// to the specific duplicate error based on the violated constraint.
func disambiguateProfileConflict(err error) error {
	if constraintName(err) == "profiles_dni_key" {
		return MapUniqueViolation(err, store.ErrDNIExists)
	}
	return MapError(err)
}
