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

// TransactionStore implements store.TransactionStore using PostgreSQL.
// The transactions table is append-only; no UPDATE or DELETE is ever issued.
type TransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTransactionStore creates a PostgreSQL implementation of the
// TransactionStore interface. If logger is nil, the default logger is used.
func NewTransactionStore(db store.DBTX, logger *slog.Logger) *TransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure TransactionStore implements store.TransactionStore
var _ store.TransactionStore = (*TransactionStore)(nil)

const transactionColumns = `id, account_id, amount, dated, description, origin, destination, card_id, type`

// Append implements store.TransactionStore.Append
func (s *TransactionStore) Append(ctx context.Context, tx *domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	cardID := sql.NullString{String: tx.CardID, Valid: tx.CardID != ""}

	_, err := s.db.ExecContext(ctx, query,
		tx.ID, tx.AccountID, tx.Amount, tx.Dated, tx.Description,
		tx.Origin, tx.Destination, cardID, string(tx.Type))
	if err != nil {
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "ledger entry appended",
		"transaction_id", tx.ID,
		"account_id", tx.AccountID,
		"type", tx.Type)
	return nil
}

// ListByAccount implements store.TransactionStore.ListByAccount
func (s *TransactionStore) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY dated DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $2`, accountID, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query, accountID)
	}
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.Transaction
	for rows.Next() {
		entry, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// GetByIDAndAccount implements store.TransactionStore.GetByIDAndAccount
func (s *TransactionStore) GetByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND account_id = $2`

	row := s.db.QueryRowContext(ctx, query, id, accountID)

	var t domain.Transaction
	var cardID sql.NullString
	var txType string
	err := row.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Dated, &t.Description,
		&t.Origin, &t.Destination, &cardID, &txType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTransactionNotFound
		}
		return nil, MapError(err)
	}

	t.CardID = cardID.String
	t.Type = domain.TransactionType(txType)
	return &t, nil
}

// scanTransaction reads one row from a multi-row result set.
func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	var t domain.Transaction
	var cardID sql.NullString
	var txType string
	err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Dated, &t.Description,
		&t.Origin, &t.Destination, &cardID, &txType)
	if err != nil {
		return nil, MapError(err)
	}

	t.CardID = cardID.String
	t.Type = domain.TransactionType(txType)
	return &t, nil
}
