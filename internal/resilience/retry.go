package resilience

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

// Operation classes with independently tuned retry behavior
const (
	ClassDatabase        = "database"
	ClassExternalPayment = "externalPayment"
	ClassCache           = "cache"
)

// Policy is a bounded exponential-backoff-with-jitter retry policy for
// transient, idempotent operations. It must never wrap a non-idempotent
// operation unless an idempotency key is already in force.
type Policy struct {
	Class             string
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	JitterFactor      float64 // 0.0-1.0

	// IsRetryable decides whether an error is worth another attempt.
	// Defaults to the transient whitelist for the class.
	IsRetryable func(error) bool
}

// DatabasePolicy covers lock-wait timeouts, deadlocks and serialization
// failures on the relational store
func DatabasePolicy() Policy {
	return Policy{
		Class:             ClassDatabase,
		MaxRetries:        3,
		InitialDelay:      50 * time.Millisecond,
		MaxDelay:          1 * time.Second,
		BackoffMultiplier: 2.0,
		JitterFactor:      0.2,
		IsRetryable:       isRetryableDatabaseError,
	}
}

// ExternalPaymentPolicy covers timeouts, rate limits and 5xx responses from
// the payment rails
func ExternalPaymentPolicy() Policy {
	return Policy{
		Class:             ClassExternalPayment,
		MaxRetries:        2,
		InitialDelay:      200 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffMultiplier: 2.0,
		JitterFactor:      0.3,
		IsRetryable:       isRetryableExternalError,
	}
}

// CachePolicy covers brief connectivity blips on the key-value cache
func CachePolicy() Policy {
	return Policy{
		Class:             ClassCache,
		MaxRetries:        2,
		InitialDelay:      20 * time.Millisecond,
		MaxDelay:          200 * time.Millisecond,
		BackoffMultiplier: 2.0,
		JitterFactor:      0.2,
		IsRetryable:       isRetryableCacheError,
	}
}

// Do runs the operation, retrying on retryable errors until the attempt
// budget is spent. Non-retryable errors propagate immediately; after
// exhausting retries the last error propagates.
func (p Policy) Do(ctx context.Context, logger coreport.Logger, operation func() error) error {
	retryable := p.IsRetryable
	if retryable == nil {
		retryable = IsTransientError
	}

	delay := p.InitialDelay
	var err error

	for attempt := 0; ; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}

		if !retryable(err) || attempt >= p.MaxRetries {
			break
		}

		backoff := jitter(delay, p.JitterFactor)
		if backoff > p.MaxDelay {
			backoff = p.MaxDelay
		}

		logger.Warn("Transient error, retrying operation", map[string]any{
			"class":       p.Class,
			"attempt":     attempt + 1,
			"max_retries": p.MaxRetries,
			"error":       err.Error(),
			"retry_after": backoff.String(),
		})

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * p.BackoffMultiplier)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return err
}

// jitter applies +/- factor randomness to a delay
func jitter(d time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		return d
	}
	// Spread in [1-factor, 1+factor)
	spread := 1 - factor + 2*factor*rand.Float64()
	return time.Duration(float64(d) * spread)
}

// IsTransientError sniffs error text for signatures the store drivers emit
// on recoverable conditions
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serialization") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "too many connections") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "eof")
}

func isRetryableDatabaseError(err error) bool {
	return errors.Is(err, errs.ErrConcurrencyConflict) || IsTransientError(err)
}

func isRetryableExternalError(err error) bool {
	// An open breaker fails fast on purpose; retrying would defeat it
	if errors.Is(err, errs.ErrCircuitOpen) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return IsTransientError(err) ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "service unavailable") ||
		strings.Contains(msg, "bad gateway") ||
		strings.Contains(msg, "status 5")
}

func isRetryableCacheError(err error) bool {
	return errors.Is(err, errs.ErrCacheUnavailable) || IsTransientError(err)
}
