// Package config loads service configuration from TOML files and
// SCHEDEASE_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/schedease/pkg/database"
	"github.com/JaimeStill/schedease/pkg/env"
	"github.com/JaimeStill/schedease/pkg/identity"
	"github.com/JaimeStill/schedease/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSchedeaseEnv             = "SCHEDEASE_ENV"
	EnvSchedeaseShutdownTimeout = "SCHEDEASE_SHUTDOWN_TIMEOUT"
	EnvSchedeaseVersion         = "SCHEDEASE_VERSION"
	EnvSchedeaseLogLevel        = "SCHEDEASE_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	Enabled:         "SCHEDEASE_DB_ENABLED",
	Host:            "SCHEDEASE_DB_HOST",
	Port:            "SCHEDEASE_DB_PORT",
	Name:            "SCHEDEASE_DB_NAME",
	User:            "SCHEDEASE_DB_USER",
	Password:        "SCHEDEASE_DB_PASSWORD",
	SSLMode:         "SCHEDEASE_DB_SSL_MODE",
	MaxOpenConns:    "SCHEDEASE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SCHEDEASE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SCHEDEASE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SCHEDEASE_DB_CONN_TIMEOUT",
}

var identityEnv = &identity.Env{
	Enabled:         "SCHEDEASE_IDENTITY_ENABLED",
	ProjectID:       "SCHEDEASE_IDENTITY_PROJECT_ID",
	Issuer:          "SCHEDEASE_IDENTITY_ISSUER",
	Audience:        "SCHEDEASE_IDENTITY_AUDIENCE",
	JWKSURL:         "SCHEDEASE_IDENTITY_JWKS_URL",
	CredentialsFile: "SCHEDEASE_IDENTITY_CREDENTIALS_FILE",
	CredentialsJSON: "SCHEDEASE_IDENTITY_CREDENTIALS_JSON",
	Endpoint:        "SCHEDEASE_IDENTITY_ENDPOINT",
}

var archiveEnv = &storage.Env{
	Enabled:          "SCHEDEASE_ARCHIVE_ENABLED",
	ContainerName:    "SCHEDEASE_ARCHIVE_CONTAINER_NAME",
	ConnectionString: "SCHEDEASE_ARCHIVE_CONNECTION_STRING",
	ServiceURL:       "SCHEDEASE_ARCHIVE_SERVICE_URL",
}

// Config is the root configuration for the schedease service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Identity        identity.Config `toml:"identity"`
	Archive         storage.Config  `toml:"archive"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	LogLevel        string          `toml:"log_level"`
}

// Env returns the SCHEDEASE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if v := os.Getenv(EnvSchedeaseEnv); v != "" {
		return v
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns the configured slog level. Validation guarantees it parses.
func (c *Config) Level() slog.Level {
	var l slog.Level
	l.UnmarshalText([]byte(c.LogLevel))
	return l
}

// Load reads config.toml when present, merges the config.<SCHEDEASE_ENV>.toml
// overlay when present, then finalizes every section. With no files at all,
// defaults and environment variables supply the configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Identity.Merge(&overlay.Identity)
	c.Archive.Merge(&overlay.Archive)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Archive.Finalize(archiveEnv); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	env.String(&c.ShutdownTimeout, EnvSchedeaseShutdownTimeout)
	env.String(&c.Version, EnvSchedeaseVersion)
	env.String(&c.LogLevel, EnvSchedeaseLogLevel)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if v := os.Getenv(EnvSchedeaseEnv); v != "" {
		path := fmt.Sprintf(OverlayConfigPattern, v)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
