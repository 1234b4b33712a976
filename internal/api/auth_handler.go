package api

import (
	"log/slog"
	"net/http"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/service/auth"
	"github.com/dmhouse/wallet-api/internal/service/registration"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	registration *registration.Orchestrator
	login        *auth.LoginService
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	orchestrator *registration.Orchestrator,
	login *auth.LoginService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		registration: orchestrator,
		login:        login,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register. It runs the full registration
// flow: credential, profile and account are created together, and all of
// them are undone if any step fails.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.registration.Register(r.Context(), registration.Request{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	token, err := h.login.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{Token: token})
}

// Deregister handles DELETE /auth/account. It tears down the
// authenticated user's credential, profile and account in reverse
// creation order.
func (h *AuthHandler) Deregister(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.registration.Deregister(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove the account completely")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
