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

// CardStore implements store.CardStore using PostgreSQL.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a PostgreSQL implementation of the CardStore
// interface. If logger is nil, the default logger is used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore
var _ store.CardStore = (*CardStore)(nil)

const cardColumns = `id, account_id, number, provider, expiration, created_at`

// Create implements store.CardStore.Create
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		card.ID, card.AccountID, card.Number, string(card.Provider),
		card.Expiration, card.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "card created",
		"card_id", card.ID,
		"account_id", card.AccountID,
		"provider", card.Provider)
	return nil
}

// GetByNumber implements store.CardStore.GetByNumber
func (s *CardStore) GetByNumber(ctx context.Context, number string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE number = $1`
	return s.scanCard(s.db.QueryRowContext(ctx, query, number))
}

// GetByIDAndAccount implements store.CardStore.GetByIDAndAccount
func (s *CardStore) GetByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND account_id = $2`
	return s.scanCard(s.db.QueryRowContext(ctx, query, id, accountID))
}

// ListByAccount implements store.CardStore.ListByAccount
func (s *CardStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE account_id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var provider string
		err := rows.Scan(&c.ID, &c.AccountID, &c.Number, &provider, &c.Expiration, &c.CreatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		c.Provider = domain.CardProvider(provider)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// Delete implements store.CardStore.Delete
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

func (s *CardStore) scanCard(row *sql.Row) (*domain.Card, error) {
	var c domain.Card
	var provider string
	err := row.Scan(&c.ID, &c.AccountID, &c.Number, &provider, &c.Expiration, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, MapError(err)
	}

	c.Provider = domain.CardProvider(provider)
	return &c, nil
}
