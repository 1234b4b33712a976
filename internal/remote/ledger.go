package remote

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/resilience"
)

// LedgerClient is the contract the money coordinator uses to append to
// and read from the transactions service. Appends fail closed so the
// coordinator can undo its balance mutation; list reads fail open to an
// empty result so activity views degrade instead of erroring.
type LedgerClient interface {
	// Append records one ledger entry.
	Append(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)

	// Last5 returns the five most recent entries for an account, newest
	// first.
	Last5(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)

	// Activity returns all entries for an account, newest first.
	Activity(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)

	// ActivityByID returns one entry, scoped to the owning account.
	ActivityByID(ctx context.Context, accountID, transferenceID uuid.UUID) (domain.Transaction, error)
}

// HTTPLedgerClient talks to the transactions service over HTTP.
type HTTPLedgerClient struct {
	base baseClient
	exec *resilience.Executor
}

var _ LedgerClient = (*HTTPLedgerClient)(nil)

// NewLedgerClient creates a client for the transactions service at baseURL.
func NewLedgerClient(baseURL, internalKey string, exec *resilience.Executor) *HTTPLedgerClient {
	return &HTTPLedgerClient{
		base: newBaseClient(baseURL, internalKey),
		exec: exec,
	}
}

func (c *HTTPLedgerClient) Append(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	return resilience.Do(ctx, c.exec, "ledger.append", resilience.FailClosed,
		func(ctx context.Context) (domain.Transaction, error) {
			var saved domain.Transaction
			err := c.base.doJSON(ctx, http.MethodPost, "/transactions", tx, &saved)
			return saved, err
		})
}

func (c *HTTPLedgerClient) Last5(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	return resilience.Do(ctx, c.exec, "ledger.last5", resilience.FailOpenEmpty,
		func(ctx context.Context) ([]domain.Transaction, error) {
			var entries []domain.Transaction
			err := c.base.doJSON(ctx, http.MethodGet, "/transactions/"+accountID.String()+"/last5", nil, &entries)
			return entries, err
		})
}

func (c *HTTPLedgerClient) Activity(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	return resilience.Do(ctx, c.exec, "ledger.activity", resilience.FailOpenEmpty,
		func(ctx context.Context) ([]domain.Transaction, error) {
			var entries []domain.Transaction
			err := c.base.doJSON(ctx, http.MethodGet, "/transactions/"+accountID.String()+"/activity", nil, &entries)
			return entries, err
		})
}

func (c *HTTPLedgerClient) ActivityByID(ctx context.Context, accountID, transferenceID uuid.UUID) (domain.Transaction, error) {
	return resilience.Do(ctx, c.exec, "ledger.activity_by_id", resilience.FailClosed,
		func(ctx context.Context) (domain.Transaction, error) {
			var entry domain.Transaction
			path := "/transactions/" + accountID.String() + "/activity/" + transferenceID.String()
			err := c.base.doJSON(ctx, http.MethodGet, path, nil, &entry)
			return entry, err
		})
}
