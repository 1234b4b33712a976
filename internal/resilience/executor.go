package resilience

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// StateChangeFunc observes circuit-breaker transitions, e.g. to count them
// in metrics. from and to are the gobreaker state names.
type StateChangeFunc func(operation, from, to string)

// Executor runs remote operations under a shared Policy. One Executor is
// created at startup and injected into every coordinator; the per-operation
// breakers inside it are therefore observed and mutated by all concurrent
// callers.
type Executor struct {
	policy   Policy
	logger   *slog.Logger
	onChange StateChangeFunc

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// Option customizes an Executor.
type Option func(*Executor)

// WithStateChangeFunc registers a callback for breaker state transitions.
func WithStateChangeFunc(fn StateChangeFunc) Option {
	return func(e *Executor) {
		e.onChange = fn
	}
}

// NewExecutor creates an Executor with the given policy.
// If logger is nil, the default logger is used.
func NewExecutor(policy Policy, logger *slog.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Executor{
		policy:   policy,
		logger:   logger.With(slog.String("component", "resilience")),
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// breaker returns the circuit breaker for an operation name, creating it on
// first use.
func (e *Executor) breaker(operation string) *gobreaker.CircuitBreaker {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cb, ok := e.breakers[operation]; ok {
		return cb
	}

	threshold := uint32(e.policy.BreakerThreshold)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        operation,
		MaxRequests: 1, // single trial call while half-open
		Timeout:     e.policy.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// A definitive business answer means the collaborator is
			// healthy; only transport-level failures count toward opening.
			return err == nil || IsDefinitive(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn("circuit breaker state change",
				"operation", name,
				"from", from.String(),
				"to", to.String())
			if e.onChange != nil {
				e.onChange(name, from.String(), to.String())
			}
		},
	})

	e.breakers[operation] = cb
	return cb
}

// Do invokes fn under the executor's policy, blocking the caller for the
// whole retry schedule. Retries stop as soon as the breaker opens; an open
// breaker fails calls immediately without touching the collaborator.
//
// With FailClosed the terminal error is a *RemoteFailure wrapping the last
// cause. With FailOpenEmpty the zero value of T is returned with a nil
// error. An error marked Definitive short-circuits both fallbacks and is
// returned to the caller unchanged.
func Do[T any](ctx context.Context, e *Executor, operation string, fallback Fallback, fn func(context.Context) (T, error)) (T, error) {
	var result T

	cb := e.breaker(operation)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.policy.InitialBackoff
	bo.MaxInterval = e.policy.MaxBackoff
	bo.MaxElapsedTime = 0

	retries := uint64(0)
	if e.policy.MaxAttempts > 1 {
		retries = uint64(e.policy.MaxAttempts - 1)
	}

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		_, execErr := cb.Execute(func() (interface{}, error) {
			value, callErr := fn(ctx)
			if callErr != nil {
				return nil, callErr
			}
			result = value
			return nil, nil
		})

		if execErr == nil {
			return nil
		}

		// An open or saturated half-open breaker means the collaborator is
		// not being called at all; retrying would only spin on the breaker.
		if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(execErr)
		}

		// A definitive answer cannot change on retry.
		if IsDefinitive(execErr) {
			return backoff.Permanent(execErr)
		}

		e.logger.Debug("remote operation attempt failed",
			"operation", operation,
			"attempt", attempt,
			"error", execErr)
		return execErr
	}, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx))

	if err == nil {
		return result, nil
	}

	var zero T

	// Definitive errors pass through untouched under either fallback:
	// "the transaction does not exist" is an answer, not an outage.
	var definitive *definitiveError
	if errors.As(err, &definitive) {
		return zero, definitive.err
	}

	if fallback == FailOpenEmpty {
		e.logger.Warn("remote read degraded to empty result",
			"operation", operation,
			"error", err)
		return zero, nil
	}

	return zero, &RemoteFailure{Operation: operation, Err: err}
}
