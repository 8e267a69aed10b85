package database_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/schedease/pkg/database"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReturnsSystem(t *testing.T) {
	cfg := database.Config{
		Enabled:         true,
		Host:            "localhost",
		Port:            5432,
		Name:            "schedease",
		User:            "schedease",
		Password:        "secret",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: "15m",
		ConnTimeout:     "5s",
	}

	sys, err := database.New(&cfg, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	if conn == nil {
		t.Fatal("Connection() returned nil")
	}

	if got := conn.Stats().MaxOpenConnections; got != 10 {
		t.Errorf("MaxOpenConnections = %d, want 10", got)
	}

	// sql.Open is lazy, so Close succeeds without a running server
	conn.Close()
}

func TestURL(t *testing.T) {
	cfg := database.Config{
		Host:     "db.internal",
		Port:     6543,
		Name:     "schedease",
		User:     "app",
		Password: "p@ss word",
		SSLMode:  "require",
	}

	got := cfg.URL()

	for _, want := range []string{
		"postgres://",
		"db.internal:6543",
		"/schedease",
		"sslmode=require",
		"p%40ss%20word",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("URL() = %q, missing %q", got, want)
		}
	}
}
