package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/resilience"
	"github.com/dmhouse/wallet-api/internal/service/auth"
	"github.com/dmhouse/wallet-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: bad field", domain.ErrValidation), http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"card number too short", domain.ErrCardNumberTooShort, http.StatusBadRequest},
		{"card expiration", domain.ErrInvalidExpiration, http.StatusBadRequest},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", store.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", store.ErrTransactionNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"dni exists", store.ErrDNIExists, http.StatusConflict},
		{"card linked to account", store.ErrCardLinkedToAccount, http.StatusConflict},
		{"card linked elsewhere", store.ErrCardLinkedElsewhere, http.StatusConflict},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusGone},
		{
			"wrapped insufficient funds",
			fmt.Errorf("debit rejected: %w", domain.ErrInsufficientFunds),
			http.StatusGone,
		},
		{
			"remote failure",
			&resilience.RemoteFailure{Operation: "ledger.append", Err: errors.New("boom")},
			http.StatusBadGateway,
		},
		{
			"wrapped remote failure",
			fmt.Errorf("deposit not recorded: %w", &resilience.RemoteFailure{Operation: "ledger.append", Err: errors.New("boom")}),
			http.StatusBadGateway,
		},
		{"unknown", errors.New("database on fire"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid email or password"},
		{"account not found", store.ErrAccountNotFound, "Account not found"},
		{"email exists", store.ErrEmailExists, "Email already registered"},
		{"insufficient funds", domain.ErrInsufficientFunds, "Insufficient funds"},
		{
			"remote failure",
			&resilience.RemoteFailure{Operation: "cards.add", Err: errors.New("connection refused")},
			"A dependent service is unavailable, please retry later",
		},
		{"unknown hides cause", errors.New("pq: connection string leaked"), "An unexpected error occurred"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessageValidationSentinelPassthrough(t *testing.T) {
	t.Parallel()

	msg := GetSafeErrorMessage(fmt.Errorf("reject: %w", domain.ErrCardNumberTooShort))
	assert.Equal(t, domain.ErrCardNumberTooShort.Error(), msg)
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("some other failure")))
}
