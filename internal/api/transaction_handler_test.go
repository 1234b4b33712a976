package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/mocks"
	"github.com/dmhouse/wallet-api/internal/service/ledger"
)

type transactionHandlerFixture struct {
	transactions *mocks.MockTransactionStore
	router       *chi.Mux
}

func newTransactionHandlerFixture(t *testing.T) *transactionHandlerFixture {
	t.Helper()

	f := &transactionHandlerFixture{transactions: mocks.NewMockTransactionStore()}
	handler := NewTransactionHandler(ledger.NewService(f.transactions, discardLogger()), discardLogger())

	r := chi.NewRouter()
	r.Post("/transactions", handler.Append)
	r.Get("/transactions/{accountID}/last5", handler.Last5)
	r.Get("/transactions/{accountID}/activity", handler.Activity)
	r.Get("/transactions/{accountID}/activity/{transferenceID}", handler.ActivityByID)
	f.router = r

	return f
}

func validAppendBody(accountID uuid.UUID) map[string]any {
	return map[string]any{
		"account_id":  accountID.String(),
		"amount":      2500,
		"description": "Deposit",
		"origin":      domain.ExternalOrigin,
		"destination": strings.Repeat("7", domain.CVULength),
		"type":        "DEPOSIT",
	}
}

func TestTransactionAppend(t *testing.T) {
	t.Parallel()

	f := newTransactionHandlerFixture(t)
	accountID := uuid.New()

	rr := doJSON(t, f.router, http.MethodPost, "/transactions", validAppendBody(accountID))

	require.Equal(t, http.StatusCreated, rr.Code)

	var tx domain.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
	assert.Equal(t, accountID, tx.AccountID)
	assert.Equal(t, int64(2500), tx.Amount)
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.False(t, tx.Dated.IsZero())
}

func TestTransactionAppendValidation(t *testing.T) {
	t.Parallel()

	f := newTransactionHandlerFixture(t)
	accountID := uuid.New()

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"zero amount", func(b map[string]any) { b["amount"] = 0 }},
		{"unknown type", func(b map[string]any) { b["type"] = "REFUND" }},
		{"missing origin", func(b map[string]any) { delete(b, "origin") }},
		{"malformed destination", func(b map[string]any) { b["destination"] = "not-a-cvu" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			body := validAppendBody(accountID)
			tc.mutate(body)

			rr := doJSON(t, f.router, http.MethodPost, "/transactions", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestTransactionLast5Empty(t *testing.T) {
	t.Parallel()

	f := newTransactionHandlerFixture(t)

	rr := doJSON(t, f.router, http.MethodGet, "/transactions/"+uuid.New().String()+"/last5", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestTransactionActivityScopedToAccount(t *testing.T) {
	t.Parallel()

	f := newTransactionHandlerFixture(t)
	accountID := uuid.New()

	rr := doJSON(t, f.router, http.MethodPost, "/transactions", validAppendBody(accountID))
	require.Equal(t, http.StatusCreated, rr.Code)

	var tx domain.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))

	// The owning account can fetch the entry.
	get := doJSON(t, f.router, http.MethodGet,
		"/transactions/"+accountID.String()+"/activity/"+tx.ID.String(), nil)
	assert.Equal(t, http.StatusOK, get.Code)

	// Any other account sees not-found, never a permission error.
	other := doJSON(t, f.router, http.MethodGet,
		"/transactions/"+uuid.New().String()+"/activity/"+tx.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, other.Code)
}

func TestTransactionInvalidPathID(t *testing.T) {
	t.Parallel()

	f := newTransactionHandlerFixture(t)

	rr := doJSON(t, f.router, http.MethodGet, "/transactions/not-a-uuid/last5", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
