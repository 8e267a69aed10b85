package infrastructure_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/schedease/internal/config"
	"github.com/JaimeStill/schedease/internal/infrastructure"
	"github.com/JaimeStill/schedease/pkg/database"
	"github.com/JaimeStill/schedease/pkg/docstore"
	"github.com/JaimeStill/schedease/pkg/identity"
	"github.com/JaimeStill/schedease/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestNewLocal(t *testing.T) {
	infra, err := infrastructure.New(&config.Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil || infra.Logger == nil {
		t.Fatal("lifecycle and logger are required")
	}
	if infra.Database != nil {
		t.Error("database should be nil when disabled")
	}
	if _, ok := infra.Store.(*docstore.Memory); !ok {
		t.Errorf("store: got %T, want *docstore.Memory", infra.Store)
	}
	if infra.Archive != nil {
		t.Error("archive should be nil when disabled")
	}

	if _, err := infra.Verifier.Verify(context.Background(), ""); !errors.Is(err, identity.ErrMissingToken) {
		t.Errorf("presence verifier: got %v, want ErrMissingToken", err)
	}
	if err := infra.Accounts.DeleteAccount(context.Background(), "uid"); !errors.Is(err, identity.ErrAccountsDisabled) {
		t.Errorf("accounts: got %v, want ErrAccountsDisabled", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}
	if !infra.Lifecycle.Ready() {
		t.Error("should be ready with no hooks registered")
	}
	infra.Lifecycle.Shutdown(time.Second)
}

func TestNewWithDatabaseAndArchive(t *testing.T) {
	cfg := &config.Config{
		Database: database.Config{
			Enabled:         true,
			Host:            "localhost",
			Port:            5432,
			Name:            "schedease",
			User:            "schedease",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "1s",
		},
		Archive: storage.Config{
			Enabled:          true,
			ContainerName:    "schedease-archive",
			ConnectionString: azuriteConnString,
		},
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Database == nil || infra.Database.Connection() == nil {
		t.Fatal("database should be constructed")
	}
	if _, ok := infra.Store.(*docstore.Memory); ok {
		t.Error("store should be postgres-backed when the database is enabled")
	}
	if infra.Archive == nil {
		t.Error("archive should be constructed")
	}
}
