package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/mocks"
	"github.com/dmhouse/wallet-api/internal/platform/metrics"
	"github.com/dmhouse/wallet-api/internal/resilience"
	"github.com/dmhouse/wallet-api/internal/service/auth"
	"github.com/dmhouse/wallet-api/internal/service/registration"
)

// discardLogger returns a logger that swallows everything, keeping handler
// tests quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// doJSON sends a JSON request through a router and records the response.
func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

type authHandlerFixture struct {
	handler     *AuthHandler
	credentials *mocks.MockCredentialStore
	profiles    *mocks.MockProfilesClient
	accounts    *mocks.MockAccountsClient
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()

	credentials := mocks.NewMockCredentialStore()
	profiles := mocks.NewMockProfilesClient()
	accounts := mocks.NewMockAccountsClient()

	orchestrator := registration.NewOrchestrator(
		credentials,
		&mocks.MockPasswordHasher{},
		profiles,
		accounts,
		discardLogger(),
		metrics.New(prometheus.NewRegistry()),
	)
	login := auth.NewLoginService(
		credentials,
		&mocks.MockPasswordVerifier{},
		&mocks.MockJWTService{Token: "issued-token"},
		discardLogger(),
	)

	return &authHandlerFixture{
		handler:     NewAuthHandler(orchestrator, login, discardLogger()),
		credentials: credentials,
		profiles:    profiles,
		accounts:    accounts,
	}
}

func validRegisterBody() map[string]any {
	return map[string]any{
		"first_name": "Ana",
		"last_name":  "Gomez",
		"dni":        "30111222",
		"email":      "ana@example.com",
		"phone":      "+5491122334455",
		"password":   "secret123",
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	rr := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())

	require.Equal(t, http.StatusCreated, rr.Code)

	var result registration.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.NotEqual(t, uuid.Nil, result.CorrelationID)
	assert.Equal(t, "ana@example.com", result.Email)
	assert.Len(t, result.CVU, domain.CVULength)
	assert.NotEmpty(t, result.Alias)

	// The raw password must never appear in the response.
	assert.NotContains(t, rr.Body.String(), "secret123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	first := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Email already registered")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing email", func(b map[string]any) { delete(b, "email") }},
		{"bad email", func(b map[string]any) { b["email"] = "not-an-email" }},
		{"short password", func(b map[string]any) { b["password"] = "abc" }},
		{"missing dni", func(b map[string]any) { delete(b, "dni") }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			body := validRegisterBody()
			tc.mutate(body)

			rr := postJSON(t, f.handler.Register, "/auth/register", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestRegisterMalformedJSON(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	f.handler.Register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterUpstreamFailure(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)
	f.accounts.CreateFn = func(ctx context.Context, correlationID uuid.UUID) (domain.Account, error) {
		return domain.Account{}, &resilience.RemoteFailure{Operation: "accounts.create", Err: context.DeadlineExceeded}
	}

	rr := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())

	assert.Equal(t, http.StatusBadGateway, rr.Code)

	// Saga compensation must have removed the credential again.
	_, err := f.credentials.GetByEmail(context.Background(), "ana@example.com")
	assert.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	rr := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())
	require.Equal(t, http.StatusCreated, rr.Code)

	login := postJSON(t, f.handler.Login, "/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "secret123",
	})

	require.Equal(t, http.StatusOK, login.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))
	assert.Equal(t, "issued-token", resp.Token)
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	rr := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())
	require.Equal(t, http.StatusCreated, rr.Code)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"wrong password", map[string]any{"email": "ana@example.com", "password": "wrong-pass"}},
		{"unknown email", map[string]any{"email": "nobody@example.com", "password": "secret123"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			login := postJSON(t, f.handler.Login, "/auth/login", tc.body)
			assert.Equal(t, http.StatusUnauthorized, login.Code)
			assert.Contains(t, login.Body.String(), "Invalid email or password")
		})
	}
}

func TestDeregisterRemovesUser(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	rr := postJSON(t, f.handler.Register, "/auth/register", validRegisterBody())
	require.Equal(t, http.StatusCreated, rr.Code)

	var result registration.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))

	req := httptest.NewRequest(http.MethodDelete, "/auth/account", nil)
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, result.CorrelationID))
	del := httptest.NewRecorder()
	f.handler.Deregister(del, req)

	require.Equal(t, http.StatusNoContent, del.Code)

	_, err := f.credentials.GetByEmail(context.Background(), "ana@example.com")
	assert.Error(t, err)
}

func TestDeregisterRequiresAuthentication(t *testing.T) {
	t.Parallel()

	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodDelete, "/auth/account", nil)
	rr := httptest.NewRecorder()
	f.handler.Deregister(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
