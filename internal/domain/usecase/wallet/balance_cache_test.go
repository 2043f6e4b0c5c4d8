package wallet

import (
	"context"
	"errors"
	"testing"

	mcache "github.com/payflow-labs/payflow/mocks/port/cache"
	mcore "github.com/payflow-labs/payflow/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBalanceCacheFixture() (*mcache.MockKeyValueCache, *BalanceCache) {
	logger := new(mcore.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()

	kv := new(mcache.MockKeyValueCache)
	return kv, NewBalanceCache(kv, logger)
}

func TestBalanceCacheGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Hit parses the stored cents", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Get", ctx, "wallet:balance:5").Return("12345", true, nil)

		cents, ok := cache.Get(ctx, 5)

		assert.True(t, ok)
		assert.Equal(t, int64(12345), cents)
	})

	t.Run("Miss reports absence", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Get", ctx, "wallet:balance:5").Return("", false, nil)

		_, ok := cache.Get(ctx, 5)

		assert.False(t, ok)
	})

	t.Run("Cache failure reads as a miss", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Get", ctx, "wallet:balance:5").Return("", false, errors.New("redis down"))

		_, ok := cache.Get(ctx, 5)

		assert.False(t, ok)
	})

	t.Run("Unparseable value reads as a miss", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Get", ctx, "wallet:balance:5").Return("not-a-number", true, nil)

		_, ok := cache.Get(ctx, 5)

		assert.False(t, ok)
	})
}

func TestBalanceCachePut(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the formatted balance with the TTL", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Set", ctx, "wallet:balance:5", "10000", balanceCacheTTL).Return(nil).Once()

		cache.Put(ctx, 5, 10000)

		kv.AssertExpectations(t)
	})

	t.Run("Set failure is swallowed", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Set", ctx, "wallet:balance:5", "10000", balanceCacheTTL).
			Return(errors.New("redis down"))

		cache.Put(ctx, 5, 10000)
	})
}

func TestBalanceCacheInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the entry", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Delete", ctx, "wallet:balance:5").Return(nil).Once()

		cache.Invalidate(ctx, 5)

		kv.AssertExpectations(t)
	})

	t.Run("Delete failure is swallowed", func(t *testing.T) {
		kv, cache := newBalanceCacheFixture()
		kv.On("Delete", ctx, "wallet:balance:5").Return(errors.New("redis down"))

		cache.Invalidate(ctx, 5)
	})
}
