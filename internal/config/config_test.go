package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/schedease/internal/config"
)

const baseConfig = `
version = "1.2.0"
log_level = "debug"

[server]
port = 8080
read_timeout = "10s"

[database]
enabled = true
host = "localhost"
port = 5432
name = "schedease"
user = "schedease"
password = "schedease"
ssl_mode = "disable"

[identity]
enabled = true
project_id = "schedease-dev"

[archive]
enabled = true
connection_string = "UseDevelopmentStorage=true"

[api]
base_path = "/api"
request_timeout = "5s"
document_collections = ["faculty", "teachers"]

[api.cors]
enabled = true
origins = ["http://localhost:4200"]
`

const overlayConfig = `
[server]
port = 9090

[database]
enabled = true
host = "prodhost"

[identity]
enabled = true
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Database.Enabled {
		t.Error("database should default to disabled")
	}
	if cfg.Identity.Enabled || cfg.Archive.Enabled {
		t.Error("identity and archive should default to disabled")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path: got %s", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySizeBytes() != 1<<20 {
		t.Errorf("max body: got %d, want 1MB", cfg.API.MaxBodySizeBytes())
	}
	if cfg.API.RequestTimeoutDuration() != 30*time.Second {
		t.Errorf("request timeout: got %v", cfg.API.RequestTimeoutDuration())
	}
	if !slices.Equal(cfg.API.DocumentCollections, config.DefaultDocumentCollections) {
		t.Errorf("collections: got %v", cfg.API.DocumentCollections)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("log level: got %v", cfg.Level())
	}
	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestLoadBaseConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "1.2.0" {
		t.Errorf("version: got %s", cfg.Version)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("log level: got %v", cfg.Level())
	}
	if cfg.Server.ReadTimeoutDuration() != 10*time.Second {
		t.Errorf("read timeout: got %v", cfg.Server.ReadTimeoutDuration())
	}
	if !cfg.Database.Enabled || cfg.Database.Name != "schedease" {
		t.Errorf("database: got %+v", cfg.Database)
	}
	if cfg.Identity.Issuer != "https://securetoken.google.com/schedease-dev" {
		t.Errorf("issuer: got %s", cfg.Identity.Issuer)
	}
	if cfg.Archive.ContainerName != "schedease-archive" {
		t.Errorf("archive container: got %s", cfg.Archive.ContainerName)
	}
	if len(cfg.API.DocumentCollections) != 2 {
		t.Errorf("collections: got %v", cfg.API.DocumentCollections)
	}
	if !cfg.API.CORS.Enabled || cfg.API.CORS.Origins[0] != "http://localhost:4200" {
		t.Errorf("cors: got %+v", cfg.API.CORS)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv(config.EnvSchedeaseEnv, "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost", cfg.Database.Host)
	}
	if cfg.Database.Name != "schedease" {
		t.Errorf("db name should survive overlay: got %s", cfg.Database.Name)
	}
	if cfg.Identity.ProjectID != "schedease-dev" {
		t.Errorf("project id should survive overlay: got %s", cfg.Identity.ProjectID)
	}
	if cfg.Env() != "prod" {
		t.Errorf("env: got %s", cfg.Env())
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv(config.EnvServerPort, "7000")
	t.Setenv("SCHEDEASE_DB_HOST", "envhost")
	t.Setenv("SCHEDEASE_IDENTITY_AUDIENCE", "custom-aud")
	t.Setenv(config.EnvAPIMaxBodySize, "64KB")
	t.Setenv(config.EnvAPIDocumentCollections, "subjects, rooms")
	t.Setenv("SCHEDEASE_CORS_ENABLED", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "envhost" {
		t.Errorf("db host: got %s", cfg.Database.Host)
	}
	if cfg.Identity.Audience != "custom-aud" {
		t.Errorf("audience: got %s", cfg.Identity.Audience)
	}
	if cfg.API.MaxBodySizeBytes() != 64*1024 {
		t.Errorf("max body: got %d", cfg.API.MaxBodySizeBytes())
	}
	if !slices.Equal(cfg.API.DocumentCollections, []string{"subjects", "rooms"}) {
		t.Errorf("collections: got %v", cfg.API.DocumentCollections)
	}
	if cfg.API.CORS.Enabled {
		t.Error("cors should be disabled by env")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{config.EnvServerPort: "70000"}, "server"},
		{"bad shutdown timeout", map[string]string{config.EnvSchedeaseShutdownTimeout: "soon"}, "shutdown_timeout"},
		{"bad log level", map[string]string{config.EnvSchedeaseLogLevel: "loud"}, "log_level"},
		{"bad body size", map[string]string{config.EnvAPIMaxBodySize: "lots"}, "max_body_size"},
		{"bad request timeout", map[string]string{config.EnvAPIRequestTimeout: "10"}, "request_timeout"},
		{"identity without project", map[string]string{"SCHEDEASE_IDENTITY_ENABLED": "true"}, "identity"},
		{"archive without account", map[string]string{"SCHEDEASE_ARCHIVE_ENABLED": "true"}, "archive"},
		{"database without name", map[string]string{"SCHEDEASE_DB_ENABLED": "true"}, "database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, "[server\nport = ")
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
