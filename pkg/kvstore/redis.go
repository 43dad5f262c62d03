// Package kvstore owns the process-wide Redis connection and key naming.
package kvstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the connection pool. Zero fields keep DefaultOptions values.
type Options struct {
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions suits the API process: a handful of concurrent product requests.
var DefaultOptions = Options{
	PoolSize:     10,
	MinIdleConns: 2,
	MaxRetries:   3,
	DialTimeout:  5 * time.Second,
	ReadTimeout:  3 * time.Second,
	WriteTimeout: 3 * time.Second,
}

const pingTimeout = 2 * time.Second

// RedisClient wraps redis.Client with the pool settings used by every process.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient dials url with DefaultOptions.
func NewRedisClient(ctx context.Context, url string) (*RedisClient, error) {
	return NewRedisClientWithOptions(ctx, url, Options{})
}

// NewRedisClientWithOptions parses url, applies opts and verifies the
// connection with a ping.
func NewRedisClientWithOptions(ctx context.Context, url string, opts Options) (*RedisClient, error) {
	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("kvstore: parse redis URL: %w", err)
	}
	opts = opts.withDefaults()
	ro.PoolSize = opts.PoolSize
	ro.MinIdleConns = opts.MinIdleConns
	ro.MaxRetries = opts.MaxRetries
	ro.DialTimeout = opts.DialTimeout
	ro.ReadTimeout = opts.ReadTimeout
	ro.WriteTimeout = opts.WriteTimeout
	ro.PoolTimeout = opts.ReadTimeout + time.Second

	rdb := redis.NewClient(ro)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("kvstore: ping redis: %w", err)
	}
	return &RedisClient{client: rdb}, nil
}

func (o Options) withDefaults() Options {
	d := DefaultOptions
	if o.PoolSize > 0 {
		d.PoolSize = o.PoolSize
	}
	if o.MinIdleConns > 0 {
		d.MinIdleConns = o.MinIdleConns
	}
	if o.MaxRetries != 0 {
		d.MaxRetries = o.MaxRetries
	}
	if o.DialTimeout > 0 {
		d.DialTimeout = o.DialTimeout
	}
	if o.ReadTimeout > 0 {
		d.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout > 0 {
		d.WriteTimeout = o.WriteTimeout
	}
	return d
}

// Wrap adopts an existing client, e.g. one pointed at a test server.
func Wrap(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool. Safe on a nil receiver.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client for direct use.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// DeletePrefix removes every key under ks using SCAN, so it never blocks the
// server the way KEYS would. It returns the number of keys deleted.
func (r *RedisClient) DeletePrefix(ctx context.Context, ks Keyspace) (int64, error) {
	var deleted int64
	iter := r.client.Scan(ctx, 0, ks.Pattern(), 100).Iterator()
	batch := make([]string, 0, 100)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Unlink(ctx, batch...).Result()
		deleted += n
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return deleted, fmt.Errorf("kvstore: delete %s: %w", ks, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("kvstore: scan %s: %w", ks, err)
	}
	if err := flush(); err != nil {
		return deleted, fmt.Errorf("kvstore: delete %s: %w", ks, err)
	}
	return deleted, nil
}

// Keyspace namespaces keys so several deployments or test runs can share
// one Redis database.
type Keyspace string

// Key joins parts under the keyspace with ':'.
func (k Keyspace) Key(parts ...string) string {
	return string(k) + ":" + strings.Join(parts, ":")
}

// Pattern matches every key in the keyspace.
func (k Keyspace) Pattern() string {
	return string(k) + ":*"
}
