// Command migrate applies the document-store schema migrations.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/JaimeStill/schedease/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "SCHEDEASE_DB_DSN"

func main() {
	var (
		dsn     = flag.String("dsn", "", "database connection string (default: "+envDSN+", then service config)")
		up      = flag.Bool("up", false, "apply all pending migrations")
		down    = flag.Bool("down", false, "revert all migrations")
		steps   = flag.Int("steps", 0, "apply N migrations (negative reverts)")
		version = flag.Bool("version", false, "print the current migration version")
		force   = flag.Int("force", -1, "force the recorded version without migrating")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		forceSet = forceSet || f.Name == "force"
	})

	url, err := resolveDSN(*dsn)
	if err != nil {
		log.Fatalf("resolve dsn: %v", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		log.Fatalf("migration source: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("read version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		report("up", m.Up())
	case *down:
		report("down", m.Down())
	case *steps != 0:
		report(fmt.Sprintf("%d steps", *steps), m.Steps(*steps))
	default:
		fmt.Println("usage: migrate [-dsn <url>] -up | -down | -steps N | -version | -force N")
		flag.PrintDefaults()
	}
}

func report(action string, err error) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		fmt.Printf("%s: no change\n", action)
	case err != nil:
		log.Fatalf("%s: %v", action, err)
	default:
		fmt.Printf("%s: applied\n", action)
	}
}

// resolveDSN prefers the flag, then SCHEDEASE_DB_DSN, then the database
// section of the service configuration.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Database.URL(), nil
}
