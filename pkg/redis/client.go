package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin wrapper around go-redis used as a read-through
// cache for catalog lookups.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis client.
func New(addr, password string, db int, ttl time.Duration) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			PoolSize:     100,
			MinIdleConns: 10,
		}),
		ttl: ttl,
	}
}

// Get retrieves a key's value.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

// Set sets a key's value with the client's default TTL.
func (c *Client) Set(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Del deletes keys. Used to invalidate cached catalog rows after
// administrative edits.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() {
	if c.client != nil {
		_ = c.client.Close()
	}
}
