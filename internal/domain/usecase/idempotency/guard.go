package idempotency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	cacheport "github.com/payflow-labs/payflow/internal/domain/port/cache"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/resilience"
)

const (
	// ResultTTL keeps a terminal outcome replayable for 24 hours
	ResultTTL = 24 * time.Hour

	// LockTTL bounds how long a reservation can stay in flight before the
	// key becomes reservable again
	LockTTL = 30 * time.Second
)

// StoredResult is the cached outcome of a completed operation, returned
// verbatim on replay
type StoredResult struct {
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload"`
}

// Token proves the caller holds the reservation for a key and must be passed
// back to Commit or Release
type Token struct {
	scope string
	key   string
}

// Decision is the outcome of LookupOrReserve: exactly one field is set
type Decision struct {
	// Cached is the prior result; the caller must return it without
	// re-executing
	Cached *StoredResult

	// Reserved means the caller won the key and must Commit or Release it
	Reserved *Token
}

// Guard is the generic request-level idempotency guard. It guarantees
// at-most-one side-effecting execution per (scope, key) pair, where scope is
// caller identity plus operation, and stores terminal outcomes for replay.
type Guard struct {
	cache  cacheport.KeyValueCache
	retry  resilience.Policy
	logger coreport.Logger
}

// NewGuard creates an idempotency guard on top of the shared key-value cache
func NewGuard(cache cacheport.KeyValueCache, logger coreport.Logger) *Guard {
	return &Guard{
		cache:  cache,
		retry:  resilience.CachePolicy(),
		logger: logger,
	}
}

// LookupOrReserve implements the guard protocol: return the cached result if
// one exists, otherwise try to reserve the key. A key already reserved by an
// in-flight request yields ErrIdempotencyConflict instead of blocking.
func (g *Guard) LookupOrReserve(ctx context.Context, scope, key string) (*Decision, error) {
	if key == "" {
		return nil, errs.ErrMissingIdempotencyKey
	}

	var raw string
	var found bool
	err := g.retry.Do(ctx, g.logger, func() error {
		var opErr error
		raw, found, opErr = g.cache.Get(ctx, resultKey(scope, key))
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: idempotency lookup failed: %s", errs.ErrCacheUnavailable, err.Error())
	}

	if found {
		var result StoredResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			// A corrupt cached result must not block the operation forever;
			// treat it as absent and let the durable layer catch duplicates
			g.logger.Error("Discarding corrupt idempotency result", map[string]any{
				"scope": scope,
				"error": err.Error(),
			})
		} else {
			g.logger.Debug("Idempotency cache hit", map[string]any{
				"scope": scope,
			})
			return &Decision{Cached: &result}, nil
		}
	}

	acquired, err := g.cache.SetNX(ctx, lockKey(scope, key), "1", LockTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: idempotency reservation failed: %s", errs.ErrCacheUnavailable, err.Error())
	}
	if !acquired {
		return nil, errs.ErrIdempotencyConflict
	}

	return &Decision{Reserved: &Token{scope: scope, key: key}}, nil
}

// Commit stores the terminal outcome for replay and releases the reservation
func (g *Guard) Commit(ctx context.Context, token *Token, status string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode idempotency payload: %w", err)
	}

	stored, err := json.Marshal(StoredResult{Status: status, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to encode idempotency result: %w", err)
	}

	err = g.retry.Do(ctx, g.logger, func() error {
		return g.cache.Set(ctx, resultKey(token.scope, token.key), string(stored), ResultTTL)
	})
	if err != nil {
		// The durable transfer-table layer still dedupes; losing the cached
		// result only costs a replayed lookup
		g.logger.Error("Failed to store idempotency result", map[string]any{
			"scope": token.scope,
			"error": err.Error(),
		})
	}

	return g.release(ctx, token)
}

// Release frees the reservation without storing a result, so the caller can
// retry after a transient failure
func (g *Guard) Release(ctx context.Context, token *Token) error {
	return g.release(ctx, token)
}

func (g *Guard) release(ctx context.Context, token *Token) error {
	if err := g.cache.Delete(ctx, lockKey(token.scope, token.key)); err != nil {
		g.logger.Warn("Failed to release idempotency lock, it will expire", map[string]any{
			"scope": token.scope,
			"error": err.Error(),
		})
	}
	return nil
}

func resultKey(scope, key string) string {
	return fmt.Sprintf("idem:result:%s:%s", scope, key)
}

func lockKey(scope, key string) string {
	return fmt.Sprintf("idem:lock:%s:%s", scope, key)
}
