package storage_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/schedease/pkg/storage"
)

const azuriteConnection = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key  string
		want error
	}{
		{"faculty/f1/1700000000.json", nil},
		{"", storage.ErrEmptyKey},
		{"faculty/../secrets", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		if err := storage.ValidateKey(tt.key); !errors.Is(err, tt.want) {
			t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.want)
		}
	}
}

func TestNewFromConnectionString(t *testing.T) {
	cfg := storage.Config{
		Enabled:          true,
		ContainerName:    "archive",
		ConnectionString: azuriteConnection,
	}

	sys, err := storage.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("disabled needs nothing", func(t *testing.T) {
		var cfg storage.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.ContainerName != "schedease-archive" {
			t.Errorf("ContainerName = %q, want schedease-archive", cfg.ContainerName)
		}
	})

	t.Run("enabled requires an endpoint", func(t *testing.T) {
		cfg := storage.Config{Enabled: true}
		if err := cfg.Finalize(nil); err == nil {
			t.Fatal("expected error without connection_string or service_url")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_ENABLED", "true")
		t.Setenv("TEST_STORAGE_SERVICE_URL", "https://acct.blob.core.windows.net/")

		var cfg storage.Config
		err := cfg.Finalize(&storage.Env{
			Enabled:    "TEST_STORAGE_ENABLED",
			ServiceURL: "TEST_STORAGE_SERVICE_URL",
		})
		if err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if !cfg.Enabled || cfg.ServiceURL == "" {
			t.Errorf("env overrides not applied: %+v", cfg)
		}
	})
}
