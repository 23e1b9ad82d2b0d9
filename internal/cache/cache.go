// Package cache stores rendered prediction responses keyed by zone and date.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// Cache is the subset of cache operations the prediction pipeline needs
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Close() error
}

// PredictionKey builds the key of a zone prediction. Zone names are
// case-sensitive so the key keeps them verbatim.
func PredictionKey(kind, zone, date string) string {
	return strings.Join([]string{"prediccion", kind, zone, date}, ":")
}

// RedisCache is a Cache backed by Redis with JSON values
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache connects to addr and checks the connection
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration, log *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", addr, err)
	}
	log.Info("redis cache connected", zap.String("addr", addr), zap.Duration("ttl", ttl))
	return &RedisCache{client: client, prefix: "riesgo:", ttl: ttl, log: log}, nil
}

// Get decodes the value stored at key into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// Set stores value at key with the cache TTL
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close closes the connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything. Used when no Redis address is configured.
type Noop struct{}

// Get always misses
func (Noop) Get(context.Context, string, interface{}) error { return ErrCacheMiss }

// Set discards the value
func (Noop) Set(context.Context, string, interface{}) error { return nil }

// Close does nothing
func (Noop) Close() error { return nil }
