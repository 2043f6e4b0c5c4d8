package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	mcore "github.com/payflow-labs/payflow/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func retryTestLogger() *mcore.MockLogger {
	logger := new(mcore.MockLogger)
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	return logger
}

// fastPolicy retries aggressively with negligible delays so tests stay quick
func fastPolicy(maxRetries int, retryable func(error) bool) Policy {
	return Policy{
		Class:             "test",
		MaxRetries:        maxRetries,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
		JitterFactor:      0,
		IsRetryable:       retryable,
	}
}

func TestPolicyDo(t *testing.T) {
	ctx := context.Background()

	t.Run("Success on the first attempt", func(t *testing.T) {
		attempts := 0
		err := fastPolicy(3, nil).Do(ctx, retryTestLogger(), func() error {
			attempts++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Non-retryable error propagates immediately", func(t *testing.T) {
		attempts := 0
		terminal := errors.New("constraint violation")
		err := fastPolicy(3, func(error) bool { return false }).Do(ctx, retryTestLogger(), func() error {
			attempts++
			return terminal
		})

		assert.ErrorIs(t, err, terminal)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Retryable error succeeds on a later attempt", func(t *testing.T) {
		attempts := 0
		err := fastPolicy(3, func(error) bool { return true }).Do(ctx, retryTestLogger(), func() error {
			attempts++
			if attempts < 3 {
				return errors.New("deadlock detected")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("Budget exhaustion returns the last error", func(t *testing.T) {
		attempts := 0
		persistent := errors.New("connection refused")
		err := fastPolicy(2, func(error) bool { return true }).Do(ctx, retryTestLogger(), func() error {
			attempts++
			return persistent
		})

		assert.ErrorIs(t, err, persistent)
		assert.Equal(t, 3, attempts)
	})

	t.Run("Context cancellation stops the retry loop", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		attempts := 0

		policy := fastPolicy(5, func(error) bool { return true })
		policy.InitialDelay = 50 * time.Millisecond

		err := policy.Do(cancelled, retryTestLogger(), func() error {
			attempts++
			cancel()
			return errors.New("timeout")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}

func TestIsTransientError(t *testing.T) {
	transient := []string{
		"deadlock detected",
		"serialization failure",
		"connection reset by peer",
		"connection refused",
		"lock timeout exceeded",
		"too many connections",
		"broken pipe",
		"unexpected EOF",
	}
	for _, msg := range transient {
		t.Run(msg, func(t *testing.T) {
			assert.True(t, IsTransientError(errors.New(msg)))
		})
	}

	assert.False(t, IsTransientError(nil))
	assert.False(t, IsTransientError(errors.New("unique constraint violated")))
}

func TestClassPredicates(t *testing.T) {
	t.Run("Database class retries concurrency conflicts", func(t *testing.T) {
		policy := DatabasePolicy()

		assert.True(t, policy.IsRetryable(errs.ErrConcurrencyConflict))
		assert.True(t, policy.IsRetryable(errors.New("deadlock detected")))
		assert.False(t, policy.IsRetryable(errors.New("unique constraint violated")))
	})

	t.Run("External payment class never retries an open breaker", func(t *testing.T) {
		policy := ExternalPaymentPolicy()

		assert.False(t, policy.IsRetryable(errs.ErrCircuitOpen))
		assert.True(t, policy.IsRetryable(context.DeadlineExceeded))
		assert.True(t, policy.IsRetryable(errors.New("status 503 service unavailable")))
		assert.True(t, policy.IsRetryable(errors.New("rate limit exceeded")))
		assert.False(t, policy.IsRetryable(errors.New("status 400 bad request")))
	})

	t.Run("Cache class retries unavailability", func(t *testing.T) {
		policy := CachePolicy()

		assert.True(t, policy.IsRetryable(errs.ErrCacheUnavailable))
		assert.True(t, policy.IsRetryable(errors.New("connection refused")))
		assert.False(t, policy.IsRetryable(errors.New("wrong type for key")))
	})
}

func TestJitterBounds(t *testing.T) {
	base := 100 * time.Millisecond

	t.Run("Zero factor leaves the delay unchanged", func(t *testing.T) {
		assert.Equal(t, base, jitter(base, 0))
	})

	t.Run("Jittered delay stays within the spread", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			d := jitter(base, 0.2)
			assert.GreaterOrEqual(t, d, 80*time.Millisecond)
			assert.Less(t, d, 120*time.Millisecond)
		}
	})
}
