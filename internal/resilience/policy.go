// Package resilience wraps remote operations with retry, circuit-breaker and
// fallback behavior. Breaker state is process-wide, keyed by operation name,
// and shared by all concurrent callers of that operation.
package resilience

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmhouse/wallet-api/internal/config"
)

// Fallback selects what happens once retries are exhausted or the circuit
// is open.
type Fallback int

const (
	// FailClosed surfaces a RemoteFailure. Used on every write path; the
	// caller must treat the operation as not having happened and run its
	// own compensation.
	FailClosed Fallback = iota

	// FailOpenEmpty swallows the failure and returns the zero value. Used
	// on read paths; callers cannot distinguish "no data" from
	// "collaborator unavailable".
	FailOpenEmpty
)

// Policy bounds the retry loop and tunes the circuit breaker.
type Policy struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry; subsequent
	// delays grow exponentially up to MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// BreakerThreshold is the number of consecutive failures that trips
	// the breaker from closed to open.
	BreakerThreshold int

	// BreakerCooldown is how long the breaker stays open before allowing
	// the single half-open trial call.
	BreakerCooldown time.Duration
}

// PolicyFromConfig builds a Policy from the loaded resilience settings.
func PolicyFromConfig(cfg config.ResilienceConfig) Policy {
	return Policy{
		MaxAttempts:      cfg.MaxAttempts,
		InitialBackoff:   cfg.InitialBackoff,
		MaxBackoff:       cfg.MaxBackoff,
		BreakerThreshold: cfg.BreakerThreshold,
		BreakerCooldown:  cfg.BreakerCooldown,
	}
}

// RemoteFailure is the terminal error of a fail-closed operation: retries
// are exhausted or the circuit is open, and the operation must be treated
// as not having happened.
type RemoteFailure struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *RemoteFailure) Error() string {
	return fmt.Sprintf("remote operation %q failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *RemoteFailure) Unwrap() error {
	return e.Err
}

// definitiveError marks a final answer from the collaborator.
type definitiveError struct {
	err error
}

func (e *definitiveError) Error() string {
	return e.err.Error()
}

func (e *definitiveError) Unwrap() error {
	return e.err
}

// Definitive marks err as a final business answer rather than a transport
// failure. A definitive error is returned to the caller unchanged: it is
// never retried, never counted against the circuit breaker, and never
// wrapped in a RemoteFailure. A NotFound or Conflict decoded from a 4xx
// response is definitive; a timeout or a 5xx is not.
func Definitive(err error) error {
	if err == nil {
		return nil
	}
	return &definitiveError{err: err}
}

// IsDefinitive reports whether err carries the Definitive marker.
func IsDefinitive(err error) bool {
	var d *definitiveError
	return errors.As(err, &d)
}
