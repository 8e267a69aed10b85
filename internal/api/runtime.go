package api

import (
	"github.com/JaimeStill/schedease/internal/config"
	"github.com/JaimeStill/schedease/internal/faculty"
	"github.com/JaimeStill/schedease/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Collections []string
	Archiver    faculty.Archiver
}

// NewRuntime creates an API runtime with a module-scoped logger. The faculty
// archiver is nil when the archive is disabled.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	rt := &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Store:     infra.Store,
			Verifier:  infra.Verifier,
			Accounts:  infra.Accounts,
			Archive:   infra.Archive,
		},
		Collections: cfg.API.DocumentCollections,
	}

	if infra.Archive != nil {
		rt.Archiver = faculty.NewBlobArchiver(infra.Archive)
	}
	return rt
}
