package remote

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/resilience"
)

// createAccountRequest is the body for account creation. The correlation
// id is the one minted by the registration orchestrator, shared by
// credential, profile and account.
type createAccountRequest struct {
	CorrelationID uuid.UUID `json:"correlation_id"`
}

// AccountsClient is the contract the registration orchestrator uses to
// manage accounts in the accounts service.
type AccountsClient interface {
	// Create opens an account with a fresh CVU and alias for the
	// correlation id.
	Create(ctx context.Context, correlationID uuid.UUID) (domain.Account, error)

	// GetByCorrelationID returns the account owned by a correlation id.
	GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (domain.Account, error)

	// Delete removes an account by its id. Used by saga compensation.
	Delete(ctx context.Context, accountID uuid.UUID) error
}

// HTTPAccountsClient talks to the accounts service over HTTP.
type HTTPAccountsClient struct {
	base baseClient
	exec *resilience.Executor
}

var _ AccountsClient = (*HTTPAccountsClient)(nil)

// NewAccountsClient creates a client for the accounts service at baseURL.
func NewAccountsClient(baseURL, internalKey string, exec *resilience.Executor) *HTTPAccountsClient {
	return &HTTPAccountsClient{
		base: newBaseClient(baseURL, internalKey),
		exec: exec,
	}
}

func (c *HTTPAccountsClient) Create(ctx context.Context, correlationID uuid.UUID) (domain.Account, error) {
	return resilience.Do(ctx, c.exec, "accounts.create", resilience.FailClosed,
		func(ctx context.Context) (domain.Account, error) {
			var account domain.Account
			err := c.base.doJSON(ctx, http.MethodPost, "/accounts", createAccountRequest{CorrelationID: correlationID}, &account)
			return account, err
		})
}

func (c *HTTPAccountsClient) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (domain.Account, error) {
	return resilience.Do(ctx, c.exec, "accounts.get_by_user", resilience.FailClosed,
		func(ctx context.Context) (domain.Account, error) {
			var account domain.Account
			err := c.base.doJSON(ctx, http.MethodGet, "/accounts/user/"+correlationID.String(), nil, &account)
			return account, err
		})
}

func (c *HTTPAccountsClient) Delete(ctx context.Context, accountID uuid.UUID) error {
	_, err := resilience.Do(ctx, c.exec, "accounts.delete", resilience.FailClosed,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.base.doJSON(ctx, http.MethodDelete, "/accounts/"+accountID.String(), nil, nil)
		})
	return err
}
