// Package redis builds the go-redis client used for the published-version cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/uat_backend/config"
)

// ErrDisabled is returned when no address is configured.
var ErrDisabled = errors.New("redis is not configured")

const (
	defaultPoolSize     = 10
	defaultMinIdleConns = 2
	defaultDialTimeout  = 5 * time.Second
	defaultIOTimeout    = 3 * time.Second
)

// Options maps the central config onto go-redis options, filling defaults
// for unset pool sizes and timeouts.
func Options(c config.RedisConfig) *goredis.Options {
	opts := &goredis.Options{
		Addr:         c.Addr,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     orDefault(c.PoolSize, defaultPoolSize),
		MinIdleConns: orDefault(c.MinIdleConns, defaultMinIdleConns),
		DialTimeout:  seconds(c.DialTimeoutSeconds, defaultDialTimeout),
		ReadTimeout:  seconds(c.ReadTimeoutSeconds, defaultIOTimeout),
		WriteTimeout: seconds(c.WriteTimeoutSeconds, defaultIOTimeout),
	}
	return opts
}

// New connects and pings. An empty address yields ErrDisabled so callers can
// run without the cache.
func New(ctx context.Context, c config.RedisConfig) (*goredis.Client, error) {
	if c.Addr == "" {
		return nil, ErrDisabled
	}

	rdb := goredis.NewClient(Options(c))
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Key joins parts under prefix with ':'.
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		return strings.Join(parts, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func seconds(v int, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
