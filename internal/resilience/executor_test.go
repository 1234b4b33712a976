package resilience

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

func testPolicy() Policy {
	return Policy{
		MaxAttempts:      3,
		InitialBackoff:   time.Millisecond,
		MaxBackoff:       5 * time.Millisecond,
		BreakerThreshold: 5,
		BreakerCooldown:  50 * time.Millisecond,
	}
}

func TestDoSuccess(t *testing.T) {
	t.Parallel()
	e := NewExecutor(testPolicy(), slog.Default())

	calls := 0
	got, err := Do(context.Background(), e, "op.success", FailClosed, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	t.Parallel()
	e := NewExecutor(testPolicy(), slog.Default())

	calls := 0
	got, err := Do(context.Background(), e, "op.flaky", FailClosed, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errUpstream
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestDoFailClosedExhaustsRetries(t *testing.T) {
	t.Parallel()
	e := NewExecutor(testPolicy(), slog.Default())

	calls := 0
	_, err := Do(context.Background(), e, "op.down", FailClosed, func(ctx context.Context) (int, error) {
		calls++
		return 0, errUpstream
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "fn should be tried exactly MaxAttempts times")

	var remoteErr *RemoteFailure
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "op.down", remoteErr.Operation)
	assert.ErrorIs(t, err, errUpstream)
}

func TestDoFailOpenEmptyReturnsZeroValue(t *testing.T) {
	t.Parallel()
	e := NewExecutor(testPolicy(), slog.Default())

	got, err := Do(context.Background(), e, "op.read", FailOpenEmpty, func(ctx context.Context) ([]string, error) {
		return nil, errUpstream
	})

	require.NoError(t, err, "read fallback must swallow the failure")
	assert.Nil(t, got)
}

func TestDoDefinitiveErrorReturnedUnchanged(t *testing.T) {
	t.Parallel()
	e := NewExecutor(testPolicy(), slog.Default())

	errNotFound := errors.New("transaction not found")
	calls := 0
	_, err := Do(context.Background(), e, "op.definitive", FailClosed, func(ctx context.Context) (int, error) {
		calls++
		return 0, Definitive(errNotFound)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "a definitive answer must not be retried")
	assert.ErrorIs(t, err, errNotFound)

	var remoteErr *RemoteFailure
	assert.False(t, errors.As(err, &remoteErr), "a definitive answer is not an upstream failure")
}

func TestDoDefinitiveErrorPropagatesOnReadPath(t *testing.T) {
	t.Parallel()
	e := NewExecutor(testPolicy(), slog.Default())

	errRejected := errors.New("account does not exist")
	_, err := Do(context.Background(), e, "op.definitive.read", FailOpenEmpty, func(ctx context.Context) ([]string, error) {
		return nil, Definitive(errRejected)
	})

	assert.ErrorIs(t, err, errRejected, "a definitive answer must not degrade to empty")
}

func TestDoDefinitiveErrorDoesNotTripBreaker(t *testing.T) {
	t.Parallel()
	policy := testPolicy()
	policy.BreakerThreshold = 2
	e := NewExecutor(policy, slog.Default())

	errConflict := errors.New("card already linked")
	for i := 0; i < 5; i++ {
		_, err := Do(context.Background(), e, "op.definitive.breaker", FailClosed, func(ctx context.Context) (int, error) {
			return 0, Definitive(errConflict)
		})
		require.ErrorIs(t, err, errConflict)
	}

	// The collaborator answered every time, so the breaker stays closed
	// and a healthy call still goes through.
	got, err := Do(context.Background(), e, "op.definitive.breaker", FailClosed, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestBreakerOpensAndStopsCalling(t *testing.T) {
	t.Parallel()
	policy := testPolicy()
	policy.BreakerThreshold = 2

	var transitions []string
	e := NewExecutor(policy, slog.Default(), WithStateChangeFunc(func(op, from, to string) {
		transitions = append(transitions, from+"->"+to)
	}))

	calls := 0
	_, err := Do(context.Background(), e, "op.breaker", FailClosed, func(ctx context.Context) (int, error) {
		calls++
		return 0, errUpstream
	})

	require.Error(t, err)
	// Third attempt hits the open breaker instead of the collaborator.
	assert.Equal(t, 2, calls)
	assert.Contains(t, transitions, "closed->open")

	// While open, calls fail fast without invoking fn.
	_, err = Do(context.Background(), e, "op.breaker", FailClosed, func(ctx context.Context) (int, error) {
		calls++
		return 0, errUpstream
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestBreakerHalfOpenTrialClosesOnSuccess(t *testing.T) {
	t.Parallel()
	policy := testPolicy()
	policy.BreakerThreshold = 1
	policy.BreakerCooldown = 20 * time.Millisecond

	e := NewExecutor(policy, slog.Default())

	_, err := Do(context.Background(), e, "op.recovering", FailClosed, func(ctx context.Context) (int, error) {
		return 0, errUpstream
	})
	require.Error(t, err)

	// Wait out the cooldown so the breaker allows the half-open trial.
	time.Sleep(30 * time.Millisecond)

	got, err := Do(context.Background(), e, "op.recovering", FailClosed, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	// Closed again: ordinary calls flow through.
	got, err = Do(context.Background(), e, "op.recovering", FailClosed, func(ctx context.Context) (int, error) {
		return 8, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestBreakerStateIsPerOperation(t *testing.T) {
	t.Parallel()
	policy := testPolicy()
	policy.BreakerThreshold = 1

	e := NewExecutor(policy, slog.Default())

	_, err := Do(context.Background(), e, "op.a", FailClosed, func(ctx context.Context) (int, error) {
		return 0, errUpstream
	})
	require.Error(t, err)

	// op.a is open; op.b is untouched.
	got, err := Do(context.Background(), e, "op.b", FailClosed, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}
