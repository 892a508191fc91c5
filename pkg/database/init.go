package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Alijeyrad/uat_backend/config"
)

// InitializeDatabases creates every database named in server.databases that
// does not exist yet. It connects to the maintenance 'postgres' database.
func InitializeDatabases(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Server.Databases) == 0 {
		return fmt.Errorf("no database names provided")
	}

	admin := FromCentralConfig(cfg.Database)
	admin.DBName = "postgres"

	conn, err := openSQLDB(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer conn.Close()

	for _, dbName := range cfg.Server.Databases {
		if err := createDatabaseIfNotExists(ctx, conn, dbName); err != nil {
			return fmt.Errorf("failed to create database %q: %w", dbName, err)
		}
	}

	return nil
}

func createDatabaseIfNotExists(ctx context.Context, conn *sql.DB, dbName string) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := conn.QueryRowContext(ctx, query, dbName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
