// Package redis provides a RenderCache backed by Redis, for sharing rendered
// output between preview-server replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Cache implements ports.RenderCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the expiration for cached renderings. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Redis cache connected to the given address.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: "weave:render:",
		ttl:    time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get returns the cached rendering for key.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis cache get: %w", err)
	}
	return val, true, nil
}

// Set stores the rendering for key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, rendered string) error {
	if err := c.client.Set(ctx, c.key(key), rendered, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
