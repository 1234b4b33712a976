// Package registration implements the user registration saga. One
// registration spans three owners: the local credential store, the
// profiles service and the accounts service. There is no distributed
// transaction; a failed step triggers best-effort compensation of the
// steps already applied, in reverse order.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/platform/metrics"
	"github.com/dmhouse/wallet-api/internal/remote"
	"github.com/dmhouse/wallet-api/internal/service/auth"
	"github.com/dmhouse/wallet-api/internal/store"
)

// State names one stage of the registration saga. The forward path is
// START → CREDENTIAL_CREATED → PROFILE_CREATED → ACCOUNT_CREATED; any
// failure moves to ROLLING_BACK and ends in ROLLED_BACK or, when a
// compensation itself fails, ROLLBACK_PARTIAL.
type State string

const (
	StateStart             State = "START"
	StateCredentialCreated State = "CREDENTIAL_CREATED"
	StateProfileCreated    State = "PROFILE_CREATED"
	StateAccountCreated    State = "ACCOUNT_CREATED"
	StateRollingBack       State = "ROLLING_BACK"
	StateRolledBack        State = "ROLLED_BACK"
	StateRollbackPartial   State = "ROLLBACK_PARTIAL"
)

// Request carries the data needed to register a user.
type Request struct {
	FirstName string
	LastName  string
	DNI       string
	Email     string
	Phone     string
	Password  string
}

// Result is the consolidated response of a successful registration,
// combining profile data with the new account's CVU and alias.
type Result struct {
	CorrelationID uuid.UUID `json:"correlation_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	CVU           string    `json:"cvu"`
	Alias         string    `json:"alias"`
}

// SagaError reports a failed registration together with the compensation
// outcome. Outcome is StateRolledBack when every applied step was undone
// and StateRollbackPartial when at least one compensation failed and
// orphaned records may remain.
type SagaError struct {
	FailedAt State
	Outcome  State
	Err      error
}

func (e *SagaError) Error() string {
	return fmt.Sprintf("registration failed at %s (compensation: %s): %v", e.FailedAt, e.Outcome, e.Err)
}

func (e *SagaError) Unwrap() error {
	return e.Err
}

// Orchestrator runs the registration saga.
type Orchestrator struct {
	credentialStore store.CredentialStore
	hasher          auth.PasswordHasher
	profiles        remote.ProfilesClient
	accounts        remote.AccountsClient
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// NewOrchestrator creates a registration Orchestrator.
func NewOrchestrator(
	credentialStore store.CredentialStore,
	hasher auth.PasswordHasher,
	profiles remote.ProfilesClient,
	accounts remote.AccountsClient,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		credentialStore: credentialStore,
		hasher:          hasher,
		profiles:        profiles,
		accounts:        accounts,
		logger:          logger.With(slog.String("component", "registration_saga")),
		metrics:         m,
	}
}

// Register runs the saga. The conflict check on the email happens before
// any side effect, so a duplicate registration leaves no partial state
// behind. All three records share one freshly minted correlation id.
func (o *Orchestrator) Register(ctx context.Context, req Request) (*Result, error) {
	log := o.logger.With(slog.String("email_domain", emailDomain(req.Email)))

	if _, err := o.credentialStore.GetByEmail(ctx, req.Email); err == nil {
		log.Warn("registration rejected: email already registered")
		return nil, fmt.Errorf("%w: email already registered", store.ErrEmailExists)
	} else if !errors.Is(err, store.ErrCredentialNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	correlationID := uuid.New()
	log = log.With(slog.String("correlation_id", correlationID.String()))
	log.Info("registration saga started")

	cred, err := domain.NewCredential(correlationID, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	cred.HashedPassword, err = o.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	cred.Password = ""

	if err := o.credentialStore.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}
	log.Info("saga step applied", slog.String("state", string(StateCredentialCreated)))

	profile := domain.Profile{
		CorrelationID: correlationID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DNI:           req.DNI,
		Email:         req.Email,
		Phone:         req.Phone,
	}
	createdProfile, err := o.profiles.Create(ctx, profile)
	if err != nil {
		return nil, o.compensate(ctx, log, StateCredentialCreated, err, compensation{
			credentialID:  cred.ID,
			correlationID: correlationID,
		})
	}
	log.Info("saga step applied", slog.String("state", string(StateProfileCreated)))

	account, err := o.accounts.Create(ctx, correlationID)
	if err != nil {
		return nil, o.compensate(ctx, log, StateProfileCreated, err, compensation{
			credentialID:  cred.ID,
			correlationID: correlationID,
			profile:       true,
		})
	}
	log.Info("saga step applied",
		slog.String("state", string(StateAccountCreated)),
		slog.String("account_id", account.ID.String()))

	o.metrics.RegistrationOutcome(string(StateAccountCreated))
	log.Info("registration saga completed")

	return &Result{
		CorrelationID: correlationID,
		FirstName:     createdProfile.FirstName,
		LastName:      createdProfile.LastName,
		Email:         createdProfile.Email,
		Phone:         createdProfile.Phone,
		CVU:           account.CVU,
		Alias:         account.Alias,
	}, nil
}

// Deregister tears down a registered user in reverse creation order:
// account, then profile, then credential. Like saga compensation it is
// best effort; it keeps going past individual failures and reports
// ROLLBACK_PARTIAL semantics through the returned error.
func (o *Orchestrator) Deregister(ctx context.Context, correlationID uuid.UUID) error {
	log := o.logger.With(slog.String("correlation_id", correlationID.String()))
	log.Info("deregistration started")

	var failed []string

	account, err := o.accounts.GetByCorrelationID(ctx, correlationID)
	switch {
	case err == nil:
		if err := o.accounts.Delete(ctx, account.ID); err != nil {
			log.Error("account deletion failed", slog.String("error", err.Error()))
			failed = append(failed, "account")
		}
	case errors.Is(err, store.ErrNotFound):
		// Nothing to delete, e.g. after a partial rollback.
	default:
		log.Error("account lookup failed", slog.String("error", err.Error()))
		failed = append(failed, "account")
	}

	if err := o.profiles.Delete(ctx, correlationID); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("profile deletion failed", slog.String("error", err.Error()))
		failed = append(failed, "profile")
	}

	cred, err := o.credentialStore.GetByCorrelationID(ctx, correlationID)
	switch {
	case err == nil:
		if err := o.credentialStore.Delete(ctx, cred.ID); err != nil {
			log.Error("credential deletion failed", slog.String("error", err.Error()))
			failed = append(failed, "credential")
		}
	case errors.Is(err, store.ErrCredentialNotFound):
	default:
		log.Error("credential lookup failed", slog.String("error", err.Error()))
		failed = append(failed, "credential")
	}

	if len(failed) > 0 {
		return fmt.Errorf("deregistration incomplete, records left behind: %v", failed)
	}

	log.Info("deregistration completed")
	return nil
}

// compensation names the artifacts a failed saga run must undo. The
// account never appears here: a failure after account creation does not
// exist on the forward path, since account creation is the last step.
type compensation struct {
	credentialID  uuid.UUID
	correlationID uuid.UUID
	profile       bool
}

// compensate undoes applied steps in reverse order. Each compensation is
// attempted regardless of earlier compensation failures; any failure
// degrades the outcome to ROLLBACK_PARTIAL.
func (o *Orchestrator) compensate(ctx context.Context, log *slog.Logger, failedAt State, cause error, undo compensation) error {
	log.Warn("saga failed, compensating",
		slog.String("state", string(StateRollingBack)),
		slog.String("failed_at", string(failedAt)),
		slog.String("error", cause.Error()))

	outcome := StateRolledBack

	if undo.profile {
		if err := o.profiles.Delete(ctx, undo.correlationID); err != nil {
			log.Error("profile compensation failed", slog.String("error", err.Error()))
			outcome = StateRollbackPartial
		} else {
			log.Info("profile compensated")
		}
	}

	if err := o.credentialStore.Delete(ctx, undo.credentialID); err != nil {
		log.Error("credential compensation failed", slog.String("error", err.Error()))
		outcome = StateRollbackPartial
	} else {
		log.Info("credential compensated")
	}

	log.Warn("saga finished", slog.String("state", string(outcome)))
	o.metrics.RegistrationOutcome(string(outcome))

	return &SagaError{FailedAt: failedAt, Outcome: outcome, Err: cause}
}

// emailDomain returns the part after '@' for logging without exposing
// the address itself.
func emailDomain(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return email[i+1:]
		}
	}
	return ""
}
