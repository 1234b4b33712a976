package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/mocks"
	"github.com/dmhouse/wallet-api/internal/service/auth"
)

func newLoginFixture(t *testing.T) (*auth.LoginService, *mocks.MockCredentialStore, uuid.UUID) {
	t.Helper()

	creds := mocks.NewMockCredentialStore()
	correlationID := uuid.New()

	cred, err := domain.NewCredential(correlationID, "ana@example.com", "secret123")
	require.NoError(t, err)
	cred.HashedPassword = "hashed:secret123"
	cred.Password = ""
	require.NoError(t, creds.Create(context.Background(), cred))

	svc := auth.NewLoginService(creds, &mocks.MockPasswordVerifier{}, &mocks.MockJWTService{Token: "issued-token"}, nil)
	return svc, creds, correlationID
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLoginFixture(t)

	token, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginTokenIssuedForCorrelationID(t *testing.T) {
	t.Parallel()

	creds := mocks.NewMockCredentialStore()
	correlationID := uuid.New()

	cred, err := domain.NewCredential(correlationID, "ana@example.com", "secret123")
	require.NoError(t, err)
	cred.HashedPassword = "hashed:secret123"
	require.NoError(t, creds.Create(context.Background(), cred))

	var tokenUserID uuid.UUID
	jwtService := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			tokenUserID = userID
			return "issued-token", nil
		},
	}

	svc := auth.NewLoginService(creds, &mocks.MockPasswordVerifier{}, jwtService, nil)

	_, err = svc.Login(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, correlationID, tokenUserID)
}

func TestLoginTokenFailure(t *testing.T) {
	t.Parallel()

	creds := mocks.NewMockCredentialStore()
	cred, err := domain.NewCredential(uuid.New(), "ana@example.com", "secret123")
	require.NoError(t, err)
	cred.HashedPassword = "hashed:secret123"
	require.NoError(t, creds.Create(context.Background(), cred))

	signErr := errors.New("signing failed")
	jwtService := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return "", signErr
		},
	}

	svc := auth.NewLoginService(creds, &mocks.MockPasswordVerifier{}, jwtService, nil)

	_, err = svc.Login(context.Background(), "ana@example.com", "secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, signErr)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
