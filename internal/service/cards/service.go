// Package cards implements the cards service. A card number is globally
// unique across the wallet: associating a number already linked to the
// same account and one linked to another account are distinct conflicts,
// so the caller can tell them apart without ever seeing the other
// account. Full numbers are stored; responses only ever carry the masked
// form.
package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/store"
)

// Service exposes card association and lookup.
type Service struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewService creates a cards Service.
func NewService(cards store.CardStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cards:  cards,
		logger: logger.With(slog.String("component", "cards_service")),
	}
}

// Associate validates and links a card to an account.
func (s *Service) Associate(ctx context.Context, accountID uuid.UUID, number, expiration string) (*domain.Card, error) {
	card, err := domain.NewCard(accountID, number, expiration)
	if err != nil {
		return nil, err
	}

	existing, err := s.cards.GetByNumber(ctx, card.Number)
	switch {
	case err == nil:
		if existing.AccountID == accountID {
			return nil, store.ErrCardLinkedToAccount
		}
		return nil, store.ErrCardLinkedElsewhere
	case errors.Is(err, store.ErrCardNotFound):
		// Free to associate.
	default:
		return nil, fmt.Errorf("failed to check card number: %w", err)
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to store card: %w", err)
	}

	s.logger.Info("card associated",
		slog.String("card_id", card.ID.String()),
		slog.String("account_id", accountID.String()),
		slog.String("provider", string(card.Provider)))
	return card, nil
}

// List returns all cards linked to an account.
func (s *Service) List(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error) {
	return s.cards.ListByAccount(ctx, accountID)
}

// Get returns one card scoped to the owning account. A card belonging to
// a different account is reported as not found.
func (s *Service) Get(ctx context.Context, accountID, cardID uuid.UUID) (*domain.Card, error) {
	return s.cards.GetByIDAndAccount(ctx, cardID, accountID)
}

// Delete unlinks a card after verifying ownership.
func (s *Service) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	if _, err := s.cards.GetByIDAndAccount(ctx, cardID, accountID); err != nil {
		return err
	}
	if err := s.cards.Delete(ctx, cardID); err != nil {
		return err
	}
	s.logger.Info("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("account_id", accountID.String()))
	return nil
}
