package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/resilience"
	"github.com/dmhouse/wallet-api/internal/service/auth"
	"github.com/dmhouse/wallet-api/internal/store"
)

// badRequestErrors are the domain validation sentinels that map to a 400
// response. Their messages are written to be client-safe.
var badRequestErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidID,
	domain.ErrInvalidEmail,
	domain.ErrInvalidAmount,
	domain.ErrAmountOverLimit,
	domain.ErrDescriptionTooLong,
	domain.ErrEmptyOrigin,
	domain.ErrEmptyDestination,
	domain.ErrNegativeBalance,
	domain.ErrEmptyCardNumber,
	domain.ErrCardNumberTooShort,
	domain.ErrInvalidCardNumber,
	domain.ErrEmptyExpiration,
	domain.ErrInvalidExpiration,
	domain.ErrEmptyEmail,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyFirstName,
	store.ErrInvalidEntity,
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	// Upstream service failures surface as a bad gateway regardless of the
	// wrapped cause.
	var remoteErr *resilience.RemoteFailure
	if errors.As(err, &remoteErr) {
		return http.StatusBadGateway
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// A debit past the available balance is reported as Gone so clients can
	// distinguish it from input validation failures.
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusGone

	default:
		for _, sentinel := range badRequestErrors {
			if errors.Is(err, sentinel) {
				return http.StatusBadRequest
			}
		}
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var remoteErr *resilience.RemoteFailure
	if errors.As(err, &remoteErr) {
		return "A dependent service is unavailable, please retry later"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Operation not permitted"

	// Not found errors
	case errors.Is(err, store.ErrCredentialNotFound),
		errors.Is(err, store.ErrProfileNotFound):
		return "User not found"

	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"

	case errors.Is(err, store.ErrTransactionNotFound):
		return "Transaction not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrDNIExists):
		return "DNI already registered"

	case errors.Is(err, store.ErrAccountExists):
		return "Account already exists"

	case errors.Is(err, store.ErrCardLinkedToAccount):
		return "Card is already linked to this account"

	case errors.Is(err, store.ErrCardLinkedElsewhere):
		return "Card is linked to another account"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient funds"

	default:
		// Domain validation messages are written to be client-safe, so the
		// sentinel text is returned as-is.
		for _, sentinel := range badRequestErrors {
			if errors.Is(err, sentinel) {
				return sentinel.Error()
			}
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to its HTTP status and safe message, logs the full
// cause, and writes the JSON error response. When defaultMsg is non-empty it
// overrides the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	msg := defaultMsg
	if msg == "" {
		msg = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), msg, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "len":
		return "wrong length"
	case "oneof":
		return "invalid value"
	case "gt":
		return "must be greater than zero"
	default:
		return "validation failed"
	}
}
