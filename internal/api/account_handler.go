package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/platform/logger"
	"github.com/dmhouse/wallet-api/internal/remote"
	"github.com/dmhouse/wallet-api/internal/service/money"
)

// AccountHandler serves the accounts endpoints. It is both the internal
// leaf (account provisioning for the registration flow, balance patches)
// and the user-facing gateway for deposits, transfers, activity and cards.
type AccountHandler struct {
	coordinator *money.Coordinator
	cards       remote.CardsClient
	logger      *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	coordinator *money.Coordinator,
	cards remote.CardsClient,
	logger *slog.Logger,
) *AccountHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AccountHandler")
	}

	return &AccountHandler{
		coordinator: coordinator,
		cards:       cards,
		logger:      logger.With(slog.String("component", "account_handler")),
	}
}

// createAccountRequest mirrors the payload the registration orchestrator
// sends when it opens an account.
type createAccountRequest struct {
	CorrelationID string `json:"correlation_id" validate:"required,uuid"`
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	correlationID, err := parseUUIDField(req.CorrelationID, "correlation_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	account, err := h.coordinator.CreateAccount(r.Context(), correlationID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, account)
}

// GetByCorrelationID handles GET /accounts/user/{correlationID}.
func (h *AccountHandler) GetByCorrelationID(w http.ResponseWriter, r *http.Request) {
	correlationID, err := getPathUUID(r, "correlationID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	account, err := h.coordinator.GetAccountByCorrelationID(r.Context(), correlationID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, account)
}

// Get handles GET /accounts/{accountID}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	account, err := h.coordinator.GetAccount(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, account)
}

// Delete handles DELETE /accounts/{accountID}. Used by saga compensation.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.coordinator.DeleteAccount(r.Context(), accountID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateDetails handles PATCH /accounts/{accountID}. The authenticated
// user must own the account.
func (h *AccountHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	account, err := h.coordinator.UpdateAccountDetails(r.Context(), accountID, req.Alias, req.Currency)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, account)
}

// PatchBalance handles PATCH /accounts/{accountID}/balance. This is the
// internal balance mutation endpoint used by peer services, not end users.
func (h *AccountHandler) PatchBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req BalancePatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err = h.coordinator.UpdateBalance(r.Context(), accountID, req.Amount, domain.TransactionType(req.Type))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterDeposit handles POST /accounts/{accountID}/deposits.
func (h *AccountHandler) RegisterDeposit(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	var req DepositRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tx, err := h.coordinator.RegisterDeposit(r.Context(), accountID, money.DepositRequest{
		Amount:      req.Amount,
		Description: req.Description,
		Origin:      req.Origin,
		CardID:      req.CardID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tx)
}

// Transfer handles POST /accounts/{accountID}/transferences.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	var req TransferRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tx, err := h.coordinator.Transfer(r.Context(), accountID, money.TransferRequest{
		DestinationCVU: req.DestinationCVU,
		Amount:         req.Amount,
		Description:    req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tx)
}

// Last5 handles GET /accounts/{accountID}/transactions.
func (h *AccountHandler) Last5(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	entries, err := h.coordinator.GetLast5(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if entries == nil {
		entries = []domain.Transaction{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Activity handles GET /accounts/{accountID}/activity.
func (h *AccountHandler) Activity(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	entries, err := h.coordinator.GetAllActivity(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if entries == nil {
		entries = []domain.Transaction{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// ActivityByID handles GET /accounts/{accountID}/activity/{transferenceID}.
func (h *AccountHandler) ActivityByID(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	transferenceID, err := getPathUUID(r, "transferenceID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tx, err := h.coordinator.GetActivityByID(r.Context(), accountID, transferenceID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tx)
}

// AssociateCard handles POST /accounts/{accountID}/cards, proxying to the
// cards service.
func (h *AccountHandler) AssociateCard(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	var req CardAssociationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cards.Add(r.Context(), accountID, remote.CardRequest{
		Number:     req.Number,
		Expiration: req.Expiration,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// ListCards handles GET /accounts/{accountID}/cards. Degrades to an empty
// list when the cards service is unavailable.
func (h *AccountHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	cards, err := h.cards.List(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if cards == nil {
		cards = []remote.CardSummary{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// GetCard handles GET /accounts/{accountID}/cards/{cardID}.
func (h *AccountHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cards.Get(r.Context(), accountID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /accounts/{accountID}/cards/{cardID}.
func (h *AccountHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := h.requireOwnedAccount(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.cards.Delete(r.Context(), accountID, cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireOwnedAccount extracts the authenticated user and the accountID
// path parameter and verifies the account belongs to that user. A response
// has already been written when ok is false.
func (h *AccountHandler) requireOwnedAccount(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, accountID, ok := handleUserIDAndPathUUID(w, r, "accountID", log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	account, err := h.coordinator.GetAccount(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	if account.CorrelationID != userID {
		log.Warn("account ownership mismatch",
			slog.String("account_id", accountID.String()))
		HandleAPIError(w, r, domain.ErrUnauthorized, "Account does not belong to the authenticated user")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, accountID, true
}
