package identity

import (
	"fmt"

	"github.com/JaimeStill/schedease/pkg/env"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	firebaseJWKSURL      = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
)

// Config holds ID-token verification and account administration settings.
// Issuer, Audience, and JWKSURL default to the Firebase values for ProjectID.
type Config struct {
	Enabled         bool   `toml:"enabled"`
	ProjectID       string `toml:"project_id"`
	Issuer          string `toml:"issuer"`
	Audience        string `toml:"audience"`
	JWKSURL         string `toml:"jwks_url"`
	CredentialsFile string `toml:"credentials_file"`
	CredentialsJSON string `toml:"credentials_json"`
	Endpoint        string `toml:"endpoint"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled         string
	ProjectID       string
	Issuer          string
	Audience        string
	JWKSURL         string
	CredentialsFile string
	CredentialsJSON string
	Endpoint        string
}

// Finalize applies environment overrides, derives Firebase defaults, and validates.
func (c *Config) Finalize(e *Env) error {
	if e != nil {
		c.loadEnv(e)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Enabled always applies.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled

	if overlay.ProjectID != "" {
		c.ProjectID = overlay.ProjectID
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.JWKSURL != "" {
		c.JWKSURL = overlay.JWKSURL
	}
	if overlay.CredentialsFile != "" {
		c.CredentialsFile = overlay.CredentialsFile
	}
	if overlay.CredentialsJSON != "" {
		c.CredentialsJSON = overlay.CredentialsJSON
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
}

func (c *Config) loadDefaults() {
	if c.ProjectID == "" {
		return
	}
	if c.Issuer == "" {
		c.Issuer = firebaseIssuerPrefix + c.ProjectID
	}
	if c.Audience == "" {
		c.Audience = c.ProjectID
	}
	if c.JWKSURL == "" {
		c.JWKSURL = firebaseJWKSURL
	}
}

func (c *Config) loadEnv(e *Env) {
	env.Bool(&c.Enabled, e.Enabled)
	env.String(&c.ProjectID, e.ProjectID)
	env.String(&c.Issuer, e.Issuer)
	env.String(&c.Audience, e.Audience)
	env.String(&c.JWKSURL, e.JWKSURL)
	env.String(&c.CredentialsFile, e.CredentialsFile)
	env.String(&c.CredentialsJSON, e.CredentialsJSON)
	env.String(&c.Endpoint, e.Endpoint)
}

func (c *Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("project_id or issuer required")
	}
	if c.Audience == "" {
		return fmt.Errorf("audience required")
	}
	if c.JWKSURL == "" {
		return fmt.Errorf("jwks_url required")
	}
	return nil
}
