// Package infrastructure assembles the shared systems every domain needs:
// logging, lifecycle, the document store, identity, and the deletion archive.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/schedease/internal/config"
	"github.com/JaimeStill/schedease/pkg/database"
	"github.com/JaimeStill/schedease/pkg/docstore"
	"github.com/JaimeStill/schedease/pkg/identity"
	"github.com/JaimeStill/schedease/pkg/lifecycle"
	"github.com/JaimeStill/schedease/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Database and Archive are nil when disabled in configuration.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Store     docstore.Store
	Verifier  identity.Verifier
	Accounts  identity.Accounts
	Archive   storage.System
}

// New creates an Infrastructure from the application configuration. Systems
// are constructed but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
		infra.Store = docstore.NewPostgres(db.Connection(), logger)
	} else {
		logger.Warn("database disabled, using in-memory document store")
		infra.Store = docstore.NewMemory()
	}

	if cfg.Identity.Enabled {
		infra.Verifier = identity.NewVerifier(lc.Context(), &cfg.Identity)

		accounts, err := identity.NewAccounts(lc.Context(), &cfg.Identity, logger)
		if err != nil {
			return nil, fmt.Errorf("identity init failed: %w", err)
		}
		infra.Accounts = accounts
	} else {
		logger.Warn("identity disabled, bearer tokens are checked for presence only")
		infra.Verifier = identity.PresenceOnly()
		infra.Accounts = identity.DisabledAccounts()
	}

	if cfg.Archive.Enabled {
		archive, err := storage.New(&cfg.Archive, logger)
		if err != nil {
			return nil, fmt.Errorf("archive init failed: %w", err)
		}
		infra.Archive = archive
	}

	return infra, nil
}

// Start registers the enabled systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if i.Archive != nil {
		if err := i.Archive.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("archive start failed: %w", err)
		}
	}
	return nil
}
