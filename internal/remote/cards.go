package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/resilience"
)

// CardRequest is the body for associating a card with an account.
type CardRequest struct {
	Number     string `json:"number"`
	Expiration string `json:"expiration"`
}

// CardSummary is what the cards service exposes for a stored card. Number
// carries only the masked form.
type CardSummary struct {
	ID         uuid.UUID `json:"id"`
	AccountID  uuid.UUID `json:"account_id"`
	Number     string    `json:"number"`
	Provider   string    `json:"provider"`
	Expiration string    `json:"expiration"`
	CreatedAt  time.Time `json:"created_at"`
}

// CardsClient is the contract the accounts gateway uses to manage cards
// in the cards service.
type CardsClient interface {
	// Add associates a card with an account.
	Add(ctx context.Context, accountID uuid.UUID, req CardRequest) (CardSummary, error)

	// List returns the cards linked to an account.
	List(ctx context.Context, accountID uuid.UUID) ([]CardSummary, error)

	// Get returns one card, scoped to the owning account.
	Get(ctx context.Context, accountID, cardID uuid.UUID) (CardSummary, error)

	// Delete unlinks a card from an account.
	Delete(ctx context.Context, accountID, cardID uuid.UUID) error
}

// HTTPCardsClient talks to the cards service over HTTP.
type HTTPCardsClient struct {
	base baseClient
	exec *resilience.Executor
}

var _ CardsClient = (*HTTPCardsClient)(nil)

// NewCardsClient creates a client for the cards service at baseURL.
func NewCardsClient(baseURL, internalKey string, exec *resilience.Executor) *HTTPCardsClient {
	return &HTTPCardsClient{
		base: newBaseClient(baseURL, internalKey),
		exec: exec,
	}
}

func (c *HTTPCardsClient) Add(ctx context.Context, accountID uuid.UUID, req CardRequest) (CardSummary, error) {
	return resilience.Do(ctx, c.exec, "cards.add", resilience.FailClosed,
		func(ctx context.Context) (CardSummary, error) {
			var card CardSummary
			err := c.base.doJSON(ctx, http.MethodPost, "/cards/"+accountID.String(), req, &card)
			return card, err
		})
}

func (c *HTTPCardsClient) List(ctx context.Context, accountID uuid.UUID) ([]CardSummary, error) {
	return resilience.Do(ctx, c.exec, "cards.list", resilience.FailOpenEmpty,
		func(ctx context.Context) ([]CardSummary, error) {
			var cards []CardSummary
			err := c.base.doJSON(ctx, http.MethodGet, "/cards/"+accountID.String(), nil, &cards)
			return cards, err
		})
}

func (c *HTTPCardsClient) Get(ctx context.Context, accountID, cardID uuid.UUID) (CardSummary, error) {
	return resilience.Do(ctx, c.exec, "cards.get", resilience.FailClosed,
		func(ctx context.Context) (CardSummary, error) {
			var card CardSummary
			err := c.base.doJSON(ctx, http.MethodGet, "/cards/"+accountID.String()+"/"+cardID.String(), nil, &card)
			return card, err
		})
}

func (c *HTTPCardsClient) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	_, err := resilience.Do(ctx, c.exec, "cards.delete", resilience.FailClosed,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.base.doJSON(ctx, http.MethodDelete, "/cards/"+accountID.String()+"/"+cardID.String(), nil, nil)
		})
	return err
}
