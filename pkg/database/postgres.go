package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	_ "github.com/lib/pq"

	"github.com/Alijeyrad/uat_backend/config"
)

func openSQLDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// NewDriver opens Postgres and wraps it in an ent SQL driver. With logging
// enabled every statement is logged at debug level.
func NewDriver(ctx context.Context, cfg config.DatabaseConfig) (dialect.Driver, error) {
	return NewDriverFromConfig(ctx, FromCentralConfig(cfg))
}

func NewDriverFromConfig(ctx context.Context, cfg Config) (dialect.Driver, error) {
	db, err := openSQLDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return wrapDriver(entsql.OpenDB(dialect.Postgres, db), cfg.EnableLogging), nil
}

// OpenDSN is NewDriver for a raw connection string, used by integration tests.
func OpenDSN(dsn string) (dialect.Driver, error) {
	drv, err := entsql.Open(dialect.Postgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return drv, nil
}

func wrapDriver(drv *entsql.Driver, logging bool) dialect.Driver {
	if !logging {
		return drv
	}
	return dialect.DebugWithContext(drv, func(ctx context.Context, v ...any) {
		slog.DebugContext(ctx, "sql", "statement", fmt.Sprint(v...))
	})
}

// Migrate creates or alters tables to match the given schema.
func Migrate(ctx context.Context, drv dialect.Driver, tables ...*schema.Table) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("failed to prepare migration: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
