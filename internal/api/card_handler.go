package api

import (
	"log/slog"
	"net/http"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/service/cards"
)

// CardHandler serves the cards endpoints. Cards belong to exactly one
// account; responses only ever carry the masked number.
type CardHandler struct {
	cards  *cards.Service
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *cards.Service, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cards:  cardService,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// Associate handles POST /cards/{accountID}.
func (h *CardHandler) Associate(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
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

	card, err := h.cards.Associate(r.Context(), accountID, req.Number, req.Expiration)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewCardResponse(card))
}

// List handles GET /cards/{accountID}.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stored, err := h.cards.List(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]CardResponse, 0, len(stored))
	for i := range stored {
		out = append(out, NewCardResponse(&stored[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Get handles GET /cards/{accountID}/{cardID}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
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

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// Delete handles DELETE /cards/{accountID}/{cardID}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := getPathUUID(r, "accountID")
	if err != nil {
		HandleAPIError(w, r, err, "")
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
