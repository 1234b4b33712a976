package remote

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/resilience"
)

// ProfilesClient is the contract the registration orchestrator uses to
// manage user profiles in the profiles service.
type ProfilesClient interface {
	// Create stores a new profile keyed by its correlation id.
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)

	// Get returns the profile for a correlation id.
	Get(ctx context.Context, correlationID uuid.UUID) (domain.Profile, error)

	// Update replaces the mutable fields of an existing profile.
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)

	// Delete removes the profile for a correlation id. Used by saga
	// compensation, so it must tolerate repeated calls.
	Delete(ctx context.Context, correlationID uuid.UUID) error
}

// HTTPProfilesClient talks to the profiles service over HTTP.
type HTTPProfilesClient struct {
	base baseClient
	exec *resilience.Executor
}

var _ ProfilesClient = (*HTTPProfilesClient)(nil)

// NewProfilesClient creates a client for the profiles service at baseURL.
func NewProfilesClient(baseURL, internalKey string, exec *resilience.Executor) *HTTPProfilesClient {
	return &HTTPProfilesClient{
		base: newBaseClient(baseURL, internalKey),
		exec: exec,
	}
}

func (c *HTTPProfilesClient) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	return resilience.Do(ctx, c.exec, "profiles.create", resilience.FailClosed,
		func(ctx context.Context) (domain.Profile, error) {
			var created domain.Profile
			err := c.base.doJSON(ctx, http.MethodPost, "/users", profile, &created)
			return created, err
		})
}

func (c *HTTPProfilesClient) Get(ctx context.Context, correlationID uuid.UUID) (domain.Profile, error) {
	return resilience.Do(ctx, c.exec, "profiles.get", resilience.FailClosed,
		func(ctx context.Context) (domain.Profile, error) {
			var profile domain.Profile
			err := c.base.doJSON(ctx, http.MethodGet, "/users/"+correlationID.String(), nil, &profile)
			return profile, err
		})
}

func (c *HTTPProfilesClient) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	return resilience.Do(ctx, c.exec, "profiles.update", resilience.FailClosed,
		func(ctx context.Context) (domain.Profile, error) {
			var updated domain.Profile
			err := c.base.doJSON(ctx, http.MethodPatch, "/users/"+profile.CorrelationID.String(), profile, &updated)
			return updated, err
		})
}

func (c *HTTPProfilesClient) Delete(ctx context.Context, correlationID uuid.UUID) error {
	_, err := resilience.Do(ctx, c.exec, "profiles.delete", resilience.FailClosed,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.base.doJSON(ctx, http.MethodDelete, "/users/"+correlationID.String(), nil, nil)
		})
	return err
}
