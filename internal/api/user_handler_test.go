package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/mocks"
)

type userHandlerFixture struct {
	profiles *mocks.MockProfileStore
	router   *chi.Mux
}

func newUserHandlerFixture(t *testing.T) *userHandlerFixture {
	t.Helper()

	f := &userHandlerFixture{profiles: mocks.NewMockProfileStore()}
	handler := NewUserHandler(f.profiles, discardLogger())

	r := chi.NewRouter()
	r.Post("/users", handler.Create)
	r.Get("/users/{correlationID}", handler.Get)
	r.Patch("/users/{correlationID}", handler.Update)
	r.Delete("/users/{correlationID}", handler.Delete)
	f.router = r

	return f
}

func validProfileBody(correlationID uuid.UUID) map[string]any {
	return map[string]any{
		"correlation_id": correlationID.String(),
		"first_name":     "Ana",
		"last_name":      "Gomez",
		"dni":            "30111222",
		"email":          "ana@example.com",
		"phone":          "+5491122334455",
	}
}

func TestUserCreateAndGet(t *testing.T) {
	t.Parallel()

	f := newUserHandlerFixture(t)
	correlationID := uuid.New()

	rr := doJSON(t, f.router, http.MethodPost, "/users", validProfileBody(correlationID))
	require.Equal(t, http.StatusCreated, rr.Code)

	get := doJSON(t, f.router, http.MethodGet, "/users/"+correlationID.String(), nil)
	require.Equal(t, http.StatusOK, get.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &profile))
	assert.Equal(t, correlationID, profile.CorrelationID)
	assert.Equal(t, "Ana", profile.FirstName)
}

func TestUserCreateDuplicateDNI(t *testing.T) {
	t.Parallel()

	f := newUserHandlerFixture(t)

	first := doJSON(t, f.router, http.MethodPost, "/users", validProfileBody(uuid.New()))
	require.Equal(t, http.StatusCreated, first.Code)

	body := validProfileBody(uuid.New())
	body["email"] = "other@example.com"
	second := doJSON(t, f.router, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "DNI already registered")
}

func TestUserUpdatePartial(t *testing.T) {
	t.Parallel()

	f := newUserHandlerFixture(t)
	correlationID := uuid.New()

	rr := doJSON(t, f.router, http.MethodPost, "/users", validProfileBody(correlationID))
	require.Equal(t, http.StatusCreated, rr.Code)

	patch := doJSON(t, f.router, http.MethodPatch, "/users/"+correlationID.String(), map[string]any{
		"phone": "+5491199887766",
	})
	require.Equal(t, http.StatusOK, patch.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(patch.Body.Bytes(), &profile))
	assert.Equal(t, "+5491199887766", profile.Phone)
	assert.Equal(t, "Ana", profile.FirstName)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestUserGetUnknown(t *testing.T) {
	t.Parallel()

	f := newUserHandlerFixture(t)

	rr := doJSON(t, f.router, http.MethodGet, "/users/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserDeleteIdempotent(t *testing.T) {
	t.Parallel()

	f := newUserHandlerFixture(t)
	correlationID := uuid.New()

	rr := doJSON(t, f.router, http.MethodPost, "/users", validProfileBody(correlationID))
	require.Equal(t, http.StatusCreated, rr.Code)

	del := doJSON(t, f.router, http.MethodDelete, "/users/"+correlationID.String(), nil)
	assert.Equal(t, http.StatusNoContent, del.Code)

	// Compensation may retry the delete; a second call must also succeed.
	again := doJSON(t, f.router, http.MethodDelete, "/users/"+correlationID.String(), nil)
	assert.Equal(t, http.StatusNoContent, again.Code)
}
