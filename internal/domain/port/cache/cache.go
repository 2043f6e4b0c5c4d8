package cache

import (
	"context"
	"time"
)

// KeyValueCache abstracts the shared key-value store backing the idempotency
// guard and the balance cache. Implementations must make SetNX atomic.
type KeyValueCache interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value with a TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetNX stores a value only if the key does not exist. Returns true if
	// the value was stored.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Delete removes a key; missing keys are not an error
	Delete(ctx context.Context, key string) error
}
