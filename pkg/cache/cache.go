package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medflow/translation-backend/pkg/logger"
)

// Cache wraps a Redis client for translation caching. A nil *Cache is
// valid and behaves as an always-miss cache, so callers never branch on
// whether caching is configured.
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

// New connects to Redis at addr. Returns an error if the server is
// unreachable.
func New(ctx context.Context, addr, password string, db int, log *logger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Info().Str("addr", addr).Msg("connected to Redis")

	return &Cache{client: client, logger: log}, nil
}

// Get returns the cached value for key and whether it was present.
// Redis errors are logged and reported as misses.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("cache read failed")
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL. Failures are logged,
// not returned: a broken cache must never fail a translation.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
