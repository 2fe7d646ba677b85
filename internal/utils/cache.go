package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error matching
	"fmt"           // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache stores JSON-encoded list pages per namespace. Bumping a namespace's
// generation makes every page cached under the old generation unreachable.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Generation(ctx context.Context, namespace string) (int64, error)
	Invalidate(ctx context.Context, namespace string) error
}

// RedisCache implements Cache on a Redis client
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache wraps a Redis client
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set sets a value in Redis with a specified TTL
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// Generation returns the current generation counter of namespace
func (c *RedisCache) Generation(ctx context.Context, namespace string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never invalidated
	}
	return gen, err
}

// Invalidate bumps the generation counter of namespace
func (c *RedisCache) Invalidate(ctx context.Context, namespace string) error {
	return c.rdb.Incr(ctx, generationKey(namespace)).Err()
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// PageKey builds the cache key of one list page within a generation
func PageKey(namespace string, gen int64, query string) string {
	return fmt.Sprintf("%s:gen=%d:%s", namespace, gen, query)
}

func generationKey(namespace string) string {
	return namespace + ":gen"
}
