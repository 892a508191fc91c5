package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/uat_backend/config"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options(config.RedisConfig{Addr: "localhost:6379", ReadTimeoutSeconds: 9})

	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultMinIdleConns, opts.MinIdleConns)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, 9*time.Second, opts.ReadTimeout)
	assert.Equal(t, defaultIOTimeout, opts.WriteTimeout)
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{})
	assert.True(t, errors.Is(err, ErrDisabled))

	mr := miniredis.RunT(t)
	rdb, err := New(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()
}

func TestKey(t *testing.T) {
	assert.Equal(t, "uat:version:active", Key("uat", "version", "active"))
	assert.Equal(t, "version:active", Key("", "version", "active"))
}
