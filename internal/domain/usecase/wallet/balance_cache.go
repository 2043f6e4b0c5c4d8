package wallet

import (
	"context"
	"fmt"
	"strconv"
	"time"

	cacheport "github.com/payflow-labs/payflow/internal/domain/port/cache"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

const balanceCacheTTL = 5 * time.Minute

// BalanceCache is a read-through cache for wallet balances. Mutating use
// cases invalidate entries after commit; a stale read self-heals on TTL.
type BalanceCache struct {
	cache  cacheport.KeyValueCache
	logger coreport.Logger
}

// NewBalanceCache creates a BalanceCache
func NewBalanceCache(cache cacheport.KeyValueCache, logger coreport.Logger) *BalanceCache {
	return &BalanceCache{cache: cache, logger: logger}
}

// Get returns the cached balance in cents and whether it was present. Cache
// failures read as misses.
func (c *BalanceCache) Get(ctx context.Context, userID uint64) (int64, bool) {
	raw, found, err := c.cache.Get(ctx, balanceKey(userID))
	if err != nil || !found {
		return 0, false
	}

	cents, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return cents, true
}

// Put stores a balance; failures are logged and ignored
func (c *BalanceCache) Put(ctx context.Context, userID uint64, balanceCents int64) {
	if err := c.cache.Set(ctx, balanceKey(userID), strconv.FormatInt(balanceCents, 10), balanceCacheTTL); err != nil {
		c.logger.Debug("Failed to cache balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

// Invalidate drops the cached balance for a user
func (c *BalanceCache) Invalidate(ctx context.Context, userID uint64) {
	if err := c.cache.Delete(ctx, balanceKey(userID)); err != nil {
		c.logger.Warn("Failed to invalidate balance cache", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func balanceKey(userID uint64) string {
	return fmt.Sprintf("wallet:balance:%d", userID)
}
