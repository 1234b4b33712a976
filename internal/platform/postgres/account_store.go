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

// AccountStore implements store.AccountStore using PostgreSQL.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a PostgreSQL implementation of the AccountStore
// interface. If logger is nil, the default logger is used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure AccountStore implements store.AccountStore
var _ store.AccountStore = (*AccountStore)(nil)

const accountColumns = `id, correlation_id, cvu, alias, balance, currency, created_at`

// Create implements store.AccountStore.Create
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.CorrelationID, account.CVU, account.Alias,
		account.Balance, account.Currency, account.CreatedAt)
	if err != nil {
		if constraintName(err) == "accounts_correlation_id_key" {
			return MapUniqueViolation(err, store.ErrAccountExists)
		}
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "account created",
		"account_id", account.ID,
		"cvu", account.CVU)
	return nil
}

// GetByID implements store.AccountStore.GetByID
func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, id))
}

// GetByCVU implements store.AccountStore.GetByCVU
func (s *AccountStore) GetByCVU(ctx context.Context, cvu string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE cvu = $1`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, cvu))
}

// GetByCorrelationID implements store.AccountStore.GetByCorrelationID
func (s *AccountStore) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE correlation_id = $1`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, correlationID))
}

// SetBalance implements store.AccountStore.SetBalance
func (s *AccountStore) SetBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET balance = $2 WHERE id = $1`, id, balance)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrAccountNotFound)
}

// DebitBalance implements store.AccountStore.DebitBalance. The balance guard
// lives in the statement itself, so a concurrent debit cannot drive the
// balance negative.
func (s *AccountStore) DebitBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET balance = balance - $2 WHERE id = $1 AND balance >= $2`,
		id, amount)
	if err != nil {
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Distinguish a missing account from an uncovered debit.
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrInsufficientFunds
}

// UpdateDetails implements store.AccountStore.UpdateDetails. Empty alias
// or currency arguments leave the stored value untouched.
func (s *AccountStore) UpdateDetails(ctx context.Context, id uuid.UUID, alias, currency string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts
		 SET alias = COALESCE(NULLIF($2, ''), alias),
		     currency = COALESCE(NULLIF($3, ''), currency)
		 WHERE id = $1`,
		id, alias, currency)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrAccountNotFound)
}

// Delete implements store.AccountStore.Delete
func (s *AccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrAccountNotFound)
}

func (s *AccountStore) scanAccount(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.CorrelationID, &a.CVU, &a.Alias, &a.Balance, &a.Currency, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		return nil, MapError(err)
	}
	return &a, nil
}
