package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/mocks"
	"github.com/dmhouse/wallet-api/internal/platform/metrics"
	"github.com/dmhouse/wallet-api/internal/remote"
	"github.com/dmhouse/wallet-api/internal/service/money"
)

type accountHandlerFixture struct {
	accounts *mocks.MockAccountStore
	ledger   *mocks.MockLedgerClient
	cards    *mocks.MockCardsClient
	router   http.Handler

	userID  uuid.UUID
	account *domain.Account
}

// newAccountHandlerFixture builds the account routes the way the server
// mounts them, with the authenticated user injected directly into the
// request context.
func newAccountHandlerFixture(t *testing.T) *accountHandlerFixture {
	t.Helper()

	f := &accountHandlerFixture{
		accounts: mocks.NewMockAccountStore(),
		ledger:   mocks.NewMockLedgerClient(),
		cards:    mocks.NewMockCardsClient(),
		userID:   uuid.New(),
	}

	account, err := domain.NewAccount(f.userID)
	require.NoError(t, err)
	account.Balance = 5000
	f.accounts.Add(account)
	f.account = account

	coordinator := money.NewCoordinator(f.accounts, f.ledger, discardLogger(), metrics.New(prometheus.NewRegistry()))
	handler := NewAccountHandler(coordinator, f.cards, discardLogger())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, f.userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/accounts", handler.Create)
	r.Get("/accounts/user/{correlationID}", handler.GetByCorrelationID)
	r.Get("/accounts/{accountID}", handler.Get)
	r.Patch("/accounts/{accountID}", handler.UpdateDetails)
	r.Patch("/accounts/{accountID}/balance", handler.PatchBalance)
	r.Post("/accounts/{accountID}/deposits", handler.RegisterDeposit)
	r.Post("/accounts/{accountID}/transferences", handler.Transfer)
	r.Get("/accounts/{accountID}/transactions", handler.Last5)
	r.Get("/accounts/{accountID}/activity", handler.Activity)
	r.Get("/accounts/{accountID}/activity/{transferenceID}", handler.ActivityByID)
	r.Post("/accounts/{accountID}/cards", handler.AssociateCard)
	r.Get("/accounts/{accountID}/cards", handler.ListCards)
	f.router = r

	return f
}

func (f *accountHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestAccountCreate(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)
	correlationID := uuid.New()

	rr := f.do(t, http.MethodPost, "/accounts", map[string]any{"correlation_id": correlationID.String()})

	require.Equal(t, http.StatusCreated, rr.Code)

	var account domain.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
	assert.Equal(t, correlationID, account.CorrelationID)
	assert.Len(t, account.CVU, domain.CVULength)
	assert.Zero(t, account.Balance)
}

func TestAccountGetByCorrelationID(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodGet, "/accounts/user/"+f.userID.String(), nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var account domain.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
	assert.Equal(t, f.account.ID, account.ID)
}

func TestAccountDepositSuccess(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPost, "/accounts/"+f.account.ID.String()+"/deposits", map[string]any{
		"amount": 2500,
	})

	require.Equal(t, http.StatusCreated, rr.Code)

	var tx domain.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
	assert.Equal(t, domain.TransactionDeposit, tx.Type)
	assert.Equal(t, int64(2500), tx.Amount)

	updated, err := f.accounts.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), updated.Balance)
}

func TestAccountDepositValidation(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPost, "/accounts/"+f.account.ID.String()+"/deposits", map[string]any{
		"amount": -50,
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAccountDepositWrongOwner(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	other, err := domain.NewAccount(uuid.New())
	require.NoError(t, err)
	f.accounts.Add(other)

	rr := f.do(t, http.MethodPost, "/accounts/"+other.ID.String()+"/deposits", map[string]any{
		"amount": 2500,
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAccountTransferSuccess(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	destination, err := domain.NewAccount(uuid.New())
	require.NoError(t, err)
	destination.Balance = 100
	f.accounts.Add(destination)

	rr := f.do(t, http.MethodPost, "/accounts/"+f.account.ID.String()+"/transferences", map[string]any{
		"destination_cvu": destination.CVU,
		"amount":          1500,
	})

	require.Equal(t, http.StatusCreated, rr.Code)

	var tx domain.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
	assert.Equal(t, domain.TransactionDebit, tx.Type)

	origin, err := f.accounts.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), origin.Balance)

	dest, err := f.accounts.GetByID(context.Background(), destination.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1600), dest.Balance)
}

func TestAccountTransferInsufficientFunds(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	destination, err := domain.NewAccount(uuid.New())
	require.NoError(t, err)
	f.accounts.Add(destination)

	rr := f.do(t, http.MethodPost, "/accounts/"+f.account.ID.String()+"/transferences", map[string]any{
		"destination_cvu": destination.CVU,
		"amount":          999999,
	})

	assert.Equal(t, http.StatusGone, rr.Code)
	assert.Contains(t, rr.Body.String(), "Insufficient funds")

	origin, err := f.accounts.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), origin.Balance)
}

func TestAccountTransferUnknownDestination(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPost, "/accounts/"+f.account.ID.String()+"/transferences", map[string]any{
		"destination_cvu": "9999999999999999999999",
		"amount":          100,
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAccountPatchBalance(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPatch, "/accounts/"+f.account.ID.String()+"/balance", map[string]any{
		"amount": 300,
		"type":   "DEBIT",
	})

	require.Equal(t, http.StatusNoContent, rr.Code)

	updated, err := f.accounts.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4700), updated.Balance)
}

func TestAccountPatchBalanceRejectsDepositType(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPatch, "/accounts/"+f.account.ID.String()+"/balance", map[string]any{
		"amount": 300,
		"type":   "DEPOSIT",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAccountLast5DegradesToEmpty(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)
	f.ledger.Last5Fn = func(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
		return nil, nil
	}

	rr := f.do(t, http.MethodGet, "/accounts/"+f.account.ID.String()+"/transactions", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestAccountUpdateAlias(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPatch, "/accounts/"+f.account.ID.String(), map[string]any{
		"alias": "new.shiny.alias",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var account domain.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
	assert.Equal(t, "new.shiny.alias", account.Alias)
	assert.Equal(t, domain.DefaultCurrency, account.Currency, "patching the alias must not touch the currency")
}

func TestAccountUpdateCurrency(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)
	originalAlias := f.account.Alias

	rr := f.do(t, http.MethodPatch, "/accounts/"+f.account.ID.String(), map[string]any{
		"currency": "USD",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var account domain.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
	assert.Equal(t, "USD", account.Currency)
	assert.Equal(t, originalAlias, account.Alias, "patching the currency must not touch the alias")

	bad := f.do(t, http.MethodPatch, "/accounts/"+f.account.ID.String(), map[string]any{
		"currency": "pesos",
	})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAccountAssociateCardProxies(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodPost, "/accounts/"+f.account.ID.String()+"/cards", map[string]any{
		"number":     "4111111111111111",
		"expiration": "12/30",
	})

	require.Equal(t, http.StatusCreated, rr.Code)

	var card remote.CardSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &card))
	assert.Equal(t, f.account.ID, card.AccountID)
	assert.NotContains(t, rr.Body.String(), "4111111111111111")
}

func TestAccountListCardsEmpty(t *testing.T) {
	t.Parallel()

	f := newAccountHandlerFixture(t)

	rr := f.do(t, http.MethodGet, "/accounts/"+f.account.ID.String()+"/cards", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}
