package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type cmdable interface {
	Ping(ctx context.Context) *goredis.StatusCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *goredis.BoolCmd
	Close() error
}

type Client struct {
	rdb       cmdable
	namespace string
}

type Options struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

func New(opts Options) *Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Client{rdb: rdb, namespace: opts.Namespace}
}

// NewWithCmdable wires a test double in place of a real connection.
func NewWithCmdable(rdb cmdable, namespace string) *Client {
	return &Client{rdb: rdb, namespace: namespace}
}

func (c *Client) buildKey(parts ...string) string {
	key := c.namespace
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// IncrWithTTL increments a counter and stamps the TTL on first increment.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	fullKey := c.buildKey(key)
	count, err := c.rdb.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: incr %s: %w", fullKey, err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, fullKey, ttl).Err(); err != nil {
			return count, fmt.Errorf("redis: expire %s: %w", fullKey, err)
		}
	}
	return count, nil
}

// FixedWindowAllow reports whether the caller is under limit for the window.
func (c *Client) FixedWindowAllow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	count, err := c.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, err
	}
	return count <= limit, nil
}
