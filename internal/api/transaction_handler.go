package api

import (
	"log/slog"
	"net/http"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/service/ledger"
)

// TransactionHandler serves the ledger endpoints. The ledger is append
// only; entries are written by the money coordinator and read back for
// activity views.
type TransactionHandler struct {
	ledger *ledger.Service
	logger *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerService *ledger.Service, logger *slog.Logger) *TransactionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TransactionHandler")
	}

	return &TransactionHandler{
		ledger: ledgerService,
		logger: logger.With(slog.String("component", "transaction_handler")),
	}
}

// Append handles POST /transactions.
func (h *TransactionHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req AppendTransactionRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tx, err := h.ledger.Append(r.Context(), ledger.AppendRequest{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		Origin:      req.Origin,
		Destination: req.Destination,
		CardID:      req.CardID,
		Type:        domain.TransactionType(req.Type),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tx)
}

// Last5 handles GET /transactions/{accountID}/last5.
func (h *TransactionHandler) Last5(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.ledger.Last5(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if entries == nil {
		entries = []domain.Transaction{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Activity handles GET /transactions/{accountID}/activity.
func (h *TransactionHandler) Activity(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.ledger.Activity(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if entries == nil {
		entries = []domain.Transaction{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// ActivityByID handles GET /transactions/{accountID}/activity/{transferenceID}.
func (h *TransactionHandler) ActivityByID(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	transferenceID, err := getPathUUID(r, "transferenceID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tx, err := h.ledger.ActivityByID(r.Context(), accountID, transferenceID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tx)
}
