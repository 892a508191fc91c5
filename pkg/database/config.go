package database

import (
	"fmt"
	"time"

	"github.com/Alijeyrad/uat_backend/config"
)

// Config holds connection and pool settings for one Postgres database.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int

	AutoMigrate   bool
	EnableLogging bool
}

// DSN returns a lib/pq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c Config) ConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetimeMin <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.ConnMaxLifetimeMin) * time.Minute
}

// FromCentralConfig converts config.DatabaseConfig to package Config.
func FromCentralConfig(c config.DatabaseConfig) Config {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return Config{
		Host:               c.Host,
		Port:               c.Port,
		User:               c.User,
		Password:           c.Password,
		DBName:             c.DBName,
		SSLMode:            sslmode,
		MaxOpenConns:       c.Pool.MaxOpenConns,
		MaxIdleConns:       c.Pool.MaxIdleConns,
		ConnMaxLifetimeMin: c.Pool.ConnMaxLifetimeMin,
		AutoMigrate:        c.Migrations.AutoMigrate,
		EnableLogging:      c.Logging.Enabled,
	}
}
