package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	configName   = "config"
	configFormat = "yaml"
	envPrefix    = "UAT"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configFormat)
	v.AddConfigPath(configPath)

	// Allow env vars to override config values.
	// e.g. UAT_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read the config file (optional in Docker environments)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if os.Getenv("UAT_DATABASE_HOST") == "" && os.Getenv("UAT_CATALOG_STORAGE") == "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("catalog.storage", StoragePostgres)
	v.SetDefault("catalog.default_locale", "en-US")
	v.SetDefault("catalog.phone_region", "US")
	v.SetDefault("catalog.cache_ttl_seconds", 300)
	v.SetDefault("redis.key_prefix", "uat")
	v.SetDefault("nats.subject_prefix", "uat")
	v.SetDefault("observability.service_name", "uat_backend")
	v.SetDefault("logging.level", "info")
}

func (c *Config) Validate() error {
	switch c.Catalog.Storage {
	case StoragePostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required for postgres storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown catalog.storage %q", c.Catalog.Storage)
	}

	if _, err := language.Parse(c.Catalog.DefaultLocale); err != nil {
		return fmt.Errorf("invalid catalog.default_locale %q: %w", c.Catalog.DefaultLocale, err)
	}

	if len(c.Catalog.PhoneRegion) != 2 {
		return fmt.Errorf("invalid catalog.phone_region %q", c.Catalog.PhoneRegion)
	}

	return nil
}

// DefaultLocale returns the parsed catalog default locale. Validate guarantees it parses.
func (c *Config) DefaultLocale() language.Tag {
	tag, err := language.Parse(c.Catalog.DefaultLocale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// CacheTTL is how long the published version stays cached.
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
