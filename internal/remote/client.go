package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/resilience"
	"github.com/dmhouse/wallet-api/internal/store"
)

// InternalKeyHeader carries the shared secret that authenticates
// service-to-service requests.
const InternalKeyHeader = "X-Internal-Key"

// defaultTimeout bounds a single HTTP attempt. Retries are handled above
// this layer by the resilience executor.
const defaultTimeout = 10 * time.Second

// errorPayload matches the error body every service writes.
type errorPayload struct {
	Error string `json:"error"`
}

// baseClient holds the plumbing shared by all service clients.
type baseClient struct {
	http        *http.Client
	baseURL     string
	internalKey string
}

func newBaseClient(baseURL, internalKey string) baseClient {
	return baseClient{
		http:        &http.Client{Timeout: defaultTimeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		internalKey: internalKey,
	}
}

// doJSON issues one HTTP request and decodes the response into out (when
// out is non-nil). Non-2xx responses are translated into the wallet's
// error taxonomy so callers never see raw status codes.
func (c *baseClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(InternalKeyHeader, c.internalKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}

// decodeError maps an error response back onto the sentinel the remote
// service raised, preserving its message. 4xx responses are final
// business answers, so they are marked definitive: the executor returns
// them unchanged instead of retrying or degrading them.
func decodeError(resp *http.Response) error {
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		payload.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return resilience.Definitive(fmt.Errorf("%w: %s", domain.ErrValidation, payload.Error))
	case http.StatusUnauthorized, http.StatusForbidden:
		return resilience.Definitive(fmt.Errorf("%w: %s", domain.ErrUnauthorized, payload.Error))
	case http.StatusNotFound:
		return resilience.Definitive(fmt.Errorf("%w: %s", store.ErrNotFound, payload.Error))
	case http.StatusConflict:
		return resilience.Definitive(fmt.Errorf("%w: %s", store.ErrDuplicate, payload.Error))
	case http.StatusGone:
		return resilience.Definitive(fmt.Errorf("%w: %s", domain.ErrInsufficientFunds, payload.Error))
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload.Error)
	}
}
