// Package redis wraps the go-redis client so repositories depend on a small
// local interface that tests can back with miniredis
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Options configures the Redis connection used for the chain cache and
// viewer sessions
type Options struct {
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	UseTLS       bool
}

// NewClient creates a client for a single Redis instance. The connection is
// lazy; call Ping to fail fast on a bad address.
func NewClient(addr string, opts *Options) (Client, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	dialTimeout := opts.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = defaultDialTimeout
	}

	redisOpts := &redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		DialTimeout:  dialTimeout,
	}

	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return redis.NewClient(redisOpts), nil
}

// Ping checks that the server is reachable
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
