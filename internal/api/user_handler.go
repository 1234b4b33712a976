package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/platform/logger"
	"github.com/dmhouse/wallet-api/internal/store"
)

// UserHandler serves the profiles endpoints. Profiles are keyed by the
// correlation ID minted at registration; creation and deletion are driven
// by the registration orchestrator, reads and patches by clients.
type UserHandler struct {
	profiles store.ProfileStore
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profiles store.ProfileStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		profiles: profiles,
		logger:   logger.With(slog.String("component", "user_handler")),
	}
}

// createProfileRequest mirrors the payload the registration orchestrator
// sends when it provisions a profile.
type createProfileRequest struct {
	CorrelationID string `json:"correlation_id" validate:"required,uuid"`
	FirstName     string `json:"first_name"     validate:"required,max=100"`
	LastName      string `json:"last_name"      validate:"required,max=100"`
	DNI           string `json:"dni"            validate:"required,max=20"`
	Email         string `json:"email"          validate:"required,email"`
	Phone         string `json:"phone"          validate:"required,max=30"`
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest

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

	profile, err := domain.NewProfile(correlationID, req.FirstName, req.LastName, req.DNI, req.Email, req.Phone)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}

// Get handles GET /users/{correlationID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	correlationID, err := getPathUUID(r, "correlationID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile, err := h.profiles.GetByCorrelationID(r.Context(), correlationID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Update handles PATCH /users/{correlationID}. Only the provided fields
// are changed.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	correlationID, err := getPathUUID(r, "correlationID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.profiles.GetByCorrelationID(r.Context(), correlationID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.FirstName != "" {
		profile.FirstName = req.FirstName
	}
	if req.LastName != "" {
		profile.LastName = req.LastName
	}
	if req.Email != "" {
		profile.Email = req.Email
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}

	if err := profile.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.profiles.Update(r.Context(), profile); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("profile updated", slog.String("correlation_id", correlationID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Delete handles DELETE /users/{correlationID}. Used by saga compensation,
// so a missing profile is not an error.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	correlationID, err := getPathUUID(r, "correlationID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.profiles.Delete(r.Context(), correlationID); err != nil && !errors.Is(err, store.ErrNotFound) {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
