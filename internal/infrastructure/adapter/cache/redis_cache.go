package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	cacheport "github.com/payflow-labs/payflow/internal/domain/port/cache"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

// Config represents Redis connection configuration
type Config struct {
	Addr         string        `mapstructure:"redis_addr"`
	Password     string        `mapstructure:"redis_password"`
	DB           int           `mapstructure:"redis_db"`
	DialTimeout  time.Duration `mapstructure:"redis_dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"redis_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"redis_write_timeout"`
}

// RedisCache implements cache.KeyValueCache on a Redis client. Errors are
// wrapped in ErrCacheUnavailable so callers can classify them as transient.
type RedisCache struct {
	client *redis.Client
	logger coreport.Logger
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(ctx context.Context, cfg Config, logger coreport.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger}, nil
}

var _ cacheport.KeyValueCache = (*RedisCache)(nil)

// Get returns the value for a key and whether it was present
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", errs.ErrCacheUnavailable, err.Error())
	}
	return value, true, nil
}

// Set stores a value with a TTL
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrCacheUnavailable, err.Error())
	}
	return nil
}

// SetNX stores a value only if the key does not exist, returning whether the
// write won
func (c *RedisCache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	won, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrCacheUnavailable, err.Error())
	}
	return won, nil
}

// Delete removes a key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrCacheUnavailable, err.Error())
	}
	return nil
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
