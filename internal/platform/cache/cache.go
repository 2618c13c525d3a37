// Package cache provides the Redis store holding catalog snapshots.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefix namespaces every key written by the manual.
	KeyPrefix = "manual"

	// DefaultTTL applies when a value is stored without a positive TTL.
	DefaultTTL = 5 * time.Minute
)

// Cache is a Redis connection with the manual's key layout and expiry rules.
type Cache struct {
	Client *redis.Client
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// New connects to Redis and pings it. Snapshots are small, so timeouts are short and
// startup falls back to the catalog source quickly when Redis is slow.
func New(ctx context.Context, url string) (*Cache, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client}, nil
}

// Key joins parts under KeyPrefix, e.g. Key("catalog", "v1", "phishing") is
// "manual:catalog:v1:phishing". Empty parts are skipped.
func Key(parts ...string) string {
	key := []string{KeyPrefix}
	for _, p := range parts {
		if p != "" {
			key = append(key, p)
		}
	}
	return strings.Join(key, ":")
}

// TTL returns ttl, or DefaultTTL when ttl is not positive. Values never live forever.
func TTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

// Get returns the value stored at key. The boolean is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores data at key with TTL(ttl).
func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Client.Set(ctx, key, data, TTL(ttl)).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.Client.Close()
}

// Name identifies the dependency in readiness reports.
func (c *Cache) Name() string { return "cache" }

// HealthCheck verifies the cache connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
