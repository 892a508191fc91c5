package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/events"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/repo/cache"
	"github.com/Alijeyrad/uat_backend/internal/repo/memory"
	"github.com/Alijeyrad/uat_backend/internal/repo/postgres"
	"github.com/Alijeyrad/uat_backend/pkg/database"
	"github.com/Alijeyrad/uat_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/uat_backend/pkg/redis"
)

// InfraModule provides storage, cache, messaging and telemetry. Redis and
// NATS are optional: with no address configured they are provided as nil.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideRepository),
	fx.Provide(ProvidePublisher),
	fx.Provide(ProvideOTel),
)

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*goredis.Client, error) {
	rdb, err := redispkg.New(context.Background(), cfg.Redis)
	if errors.Is(err, redispkg.ErrDisabled) {
		slog.Debug("redis not configured, version cache disabled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		slog.Debug("nats not configured, events disabled")
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name(cfg.Observability.ServiceName))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

// ProvideRepository selects the storage backend and puts the redis cache in
// front of it when redis is available.
func ProvideRepository(lc fx.Lifecycle, cfg *config.Config, rdb *goredis.Client) (repo.Repository, error) {
	var r repo.Repository

	switch cfg.Catalog.Storage {
	case config.StorageMemory:
		r = memory.New()
	default:
		drv, err := database.NewDriver(context.Background(), cfg.Database)
		if err != nil {
			return nil, err
		}
		pg := postgres.New(drv)
		if cfg.Database.Migrations.AutoMigrate {
			if err := pg.Migrate(context.Background()); err != nil {
				_ = pg.Close()
				return nil, err
			}
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				slog.Debug("closing main database connection")
				return pg.Close()
			},
		})
		r = pg
	}

	if rdb != nil {
		r = cache.New(r, rdb, cfg.Redis.KeyPrefix, cfg.Catalog.CacheTTL())
	}
	return r, nil
}

func ProvidePublisher(cfg *config.Config, nc *nats.Conn) events.Publisher {
	if nc == nil {
		return events.Nop{}
	}
	return events.NewNATS(nc, cfg.Nats.SubjectPrefix)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
