// Package ledger implements the transactions service: an append-only
// record of money movements. Entries are validated on the way in and
// never updated or deleted afterwards.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// last5Limit caps the recent-activity view.
const last5Limit = 5

// AppendRequest carries the data for one new ledger entry.
type AppendRequest struct {
	AccountID   uuid.UUID
	Amount      int64
	Description string
	Origin      string
	Destination string
	CardID      string
	Type        domain.TransactionType
}

// Service exposes the ledger operations.
type Service struct {
	transactions store.TransactionStore
	logger       *slog.Logger
}

// NewService creates a ledger Service.
func NewService(transactions store.TransactionStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		transactions: transactions,
		logger:       logger.With(slog.String("component", "ledger_service")),
	}
}

// Append validates and stores one entry. Origin and destination must be
// well-formed CVUs when the entry represents an account-to-account
// movement; EXTERNAL_SOURCE and CARD are allowed as deposit origins.
func (s *Service) Append(ctx context.Context, req AppendRequest) (*domain.Transaction, error) {
	tx, err := domain.NewTransaction(req.AccountID, req.Amount, req.Description, req.Origin, req.Destination, req.CardID, req.Type)
	if err != nil {
		return nil, err
	}

	if err := validateEndpoints(tx); err != nil {
		return nil, err
	}

	if err := s.transactions.Append(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	s.logger.Info("ledger entry appended",
		slog.String("transaction_id", tx.ID.String()),
		slog.String("account_id", tx.AccountID.String()),
		slog.String("type", string(tx.Type)))
	return tx, nil
}

// Last5 returns up to five entries, newest first.
func (s *Service) Last5(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	return s.transactions.ListByAccount(ctx, accountID, last5Limit)
}

// Activity returns all entries for an account, newest first.
func (s *Service) Activity(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	return s.transactions.ListByAccount(ctx, accountID, 0)
}

// ActivityByID returns one entry scoped to the owning account. An entry
// belonging to a different account is reported as not found, never as a
// permission error, so the response does not leak its existence.
func (s *Service) ActivityByID(ctx context.Context, accountID, transferenceID uuid.UUID) (*domain.Transaction, error) {
	return s.transactions.GetByIDAndAccount(ctx, transferenceID, accountID)
}

// validateEndpoints applies the CVU format rules to the entry's origin
// and destination. EXTERNAL_SOURCE and CARD are the two non-CVU origins;
// a CARD entry must name the funding card.
func validateEndpoints(tx *domain.Transaction) error {
	if tx.Origin == domain.CardOrigin && tx.CardID == "" {
		return fmt.Errorf("%w: card origin requires a card id", domain.ErrValidation)
	}
	if tx.Origin != domain.ExternalOrigin && tx.Origin != domain.CardOrigin && !domain.ValidCVU(tx.Origin) {
		return fmt.Errorf("%w: malformed origin CVU", domain.ErrValidation)
	}
	if !domain.ValidCVU(tx.Destination) {
		return fmt.Errorf("%w: malformed destination CVU", domain.ErrValidation)
	}
	return nil
}
