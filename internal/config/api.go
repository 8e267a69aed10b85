package config

import (
	"fmt"
	"time"

	"github.com/JaimeStill/schedease/pkg/env"
	"github.com/JaimeStill/schedease/pkg/formatting"
	"github.com/JaimeStill/schedease/pkg/middleware"
)

const (
	EnvAPIBasePath            = "SCHEDEASE_API_BASE_PATH"
	EnvAPIMaxBodySize         = "SCHEDEASE_API_MAX_BODY_SIZE"
	EnvAPIRequestTimeout      = "SCHEDEASE_API_REQUEST_TIMEOUT"
	EnvAPIDocumentCollections = "SCHEDEASE_API_DOCUMENT_COLLECTIONS"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCHEDEASE_CORS_ENABLED",
	Origins:          "SCHEDEASE_CORS_ORIGINS",
	AllowedMethods:   "SCHEDEASE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCHEDEASE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCHEDEASE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCHEDEASE_CORS_MAX_AGE",
}

// DefaultDocumentCollections are the collections the generic document API
// exposes when none are configured.
var DefaultDocumentCollections = []string{"faculty", "teachers", "subjects", "classrooms", "rooms"}

// APIConfig holds API routing, request limits, and CORS settings.
type APIConfig struct {
	BasePath            string                `toml:"base_path"`
	MaxBodySize         string                `toml:"max_body_size"`
	RequestTimeout      string                `toml:"request_timeout"`
	DocumentCollections []string              `toml:"document_collections"`
	CORS                middleware.CORSConfig `toml:"cors"`
}

// MaxBodySizeBytes returns MaxBodySize as a byte count. Validation guarantees it parses.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxBodySize)
	return n
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *APIConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation for the
// API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.DocumentCollections != nil {
		c.DocumentCollections = overlay.DocumentCollections
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
	if len(c.DocumentCollections) == 0 {
		c.DocumentCollections = append([]string(nil), DefaultDocumentCollections...)
	}
}

func (c *APIConfig) loadEnv() {
	env.String(&c.BasePath, EnvAPIBasePath)
	env.String(&c.MaxBodySize, EnvAPIMaxBodySize)
	env.String(&c.RequestTimeout, EnvAPIRequestTimeout)
	env.List(&c.DocumentCollections, EnvAPIDocumentCollections)
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	return nil
}
