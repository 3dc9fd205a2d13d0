// Package cache stores JSON encoded catalog entries in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheGet is returned when a value cannot be read
	ErrCacheGet = errors.New("cache: failed to get value")

	// ErrCacheSet is returned when a value cannot be written
	ErrCacheSet = errors.New("cache: failed to set value")

	// ErrCacheDelete is returned when a key cannot be removed
	ErrCacheDelete = errors.New("cache: failed to delete value")
)

// Logger is the logging surface used by the cache
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisCache keeps values as JSON strings under a key prefix
type RedisCache struct {
	client *redis.Client
	prefix string
	logger Logger
}

// NewRedisCache wraps a connected client
func NewRedisCache(client *redis.Client, prefix string, logger Logger) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

// Connect opens a client and checks it with PING
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", addr, err)
	}

	return client, nil
}

// Get decodes the value stored under key into dest. The bool is false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: key=%s: %v", ErrCacheGet, key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache: dropping undecodable value key=%s: %v", key, err)
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return false, nil
	}

	return true, nil
}

// Set stores value as JSON with the given ttl
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key=%s - marshal: %v", ErrCacheSet, key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrCacheSet, key, err)
	}

	return nil
}

// Delete removes keys
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: keys=%v: %v", ErrCacheDelete, keys, err)
	}

	return nil
}

// Nop never stores anything. Used when the cache is disabled.
type Nop struct{}

// Get always misses
func (Nop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

// Set does nothing
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

// Delete does nothing
func (Nop) Delete(context.Context, ...string) error { return nil }
