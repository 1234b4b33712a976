package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmhouse/wallet-api/internal/store"
)

// LoginService authenticates a credential and issues an access token.
type LoginService struct {
	credentialStore store.CredentialStore
	verifier        PasswordVerifier
	jwtService      JWTService
	logger          *slog.Logger
}

// NewLoginService creates a LoginService.
func NewLoginService(
	credentialStore store.CredentialStore,
	verifier PasswordVerifier,
	jwtService JWTService,
	logger *slog.Logger,
) *LoginService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		credentialStore: credentialStore,
		verifier:        verifier,
		jwtService:      jwtService,
		logger:          logger.With(slog.String("component", "login_service")),
	}
}

// Login verifies the email and password and returns a signed access token.
// Returns ErrInvalidCredentials when either side of the pair is wrong.
func (s *LoginService) Login(ctx context.Context, email, password string) (string, error) {
	cred, err := s.credentialStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load credential: %w", err)
	}

	if err := s.verifier.Compare(cred.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			slog.String("correlation_id", cred.CorrelationID.String()))
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, cred.CorrelationID)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.Info("login succeeded",
		slog.String("correlation_id", cred.CorrelationID.String()))
	return token, nil
}
