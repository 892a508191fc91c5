// Package cache decorates a Repository with a redis copy of the active
// version. The active version only changes on publish, so reads between
// publications never reach the underlying store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/version"
	"github.com/Alijeyrad/uat_backend/pkg/redis"
)

// Repository caches ActiveVersion and forwards everything else.
type Repository struct {
	repo.Repository
	rdb goredis.UniversalClient
	key string
	ttl time.Duration
}

var _ repo.Repository = (*Repository)(nil)

func New(next repo.Repository, rdb goredis.UniversalClient, keyPrefix string, ttl time.Duration) *Repository {
	return &Repository{
		Repository: next,
		rdb:        rdb,
		key:        redis.Key(keyPrefix, "version", "active"),
		ttl:        ttl,
	}
}

// ActiveVersion serves from redis when possible. Cache failures are logged
// and fall through to the underlying store.
func (r *Repository) ActiveVersion(ctx context.Context) (*version.Version, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	switch {
	case err == nil:
		var v version.Version
		if err := json.Unmarshal(raw, &v); err == nil {
			return &v, nil
		}
		slog.WarnContext(ctx, "discarding undecodable cached version", "key", r.key)
	case !errors.Is(err, goredis.Nil):
		slog.WarnContext(ctx, "version cache read failed", "key", r.key, "error", err)
	}

	v, err := r.Repository.ActiveVersion(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.store(ctx, v); err != nil {
		slog.WarnContext(ctx, "version cache write failed", "key", r.key, "error", err)
	}
	return v, nil
}

// Publish promotes the draft, then overwrites the cached active version.
// The cache is only touched after the promotion commits, so a read racing
// the publish cannot outlive it. When the overwrite fails the entry is
// dropped instead.
func (r *Repository) Publish(ctx context.Context) (*version.Version, error) {
	v, err := r.Repository.Publish(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.store(ctx, v); err != nil {
		slog.WarnContext(ctx, "version cache write failed, dropping entry", "key", r.key, "error", err)
		if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
			return nil, fmt.Errorf("invalidate version cache: %w", err)
		}
	}
	return v, nil
}

func (r *Repository) store(ctx context.Context, v *version.Version) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode version %d: %w", v.ID(), err)
	}
	return r.rdb.Set(ctx, r.key, raw, r.ttl).Err()
}
