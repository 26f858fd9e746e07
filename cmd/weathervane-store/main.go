// weathervane-store serves the weather observation store: a REST API over a
// SQLite database of locations and the records measured at them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/oakmere/weathervane/migrations"

	"github.com/oakmere/weathervane/internal/infrastructure/config"
	"github.com/oakmere/weathervane/internal/infrastructure/database"
	"github.com/oakmere/weathervane/internal/infrastructure/logging"
	"github.com/oakmere/weathervane/internal/storeapi"
	"github.com/oakmere/weathervane/internal/weather"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default("weathervane-store")
	log.Info("starting observation store", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, "weathervane-store", version)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Store.Database.Path,
		WALMode:     cfg.Store.Database.WALMode,
		BusyTimeout: cfg.Store.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Store.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	repo := weather.NewSQLiteRepository(db.DB)

	server, err := storeapi.New(storeapi.Deps{
		Config:  cfg.Store.API,
		Logger:  log,
		Repo:    repo,
		DB:      db,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}

// getConfigPath returns the config file path from args or the default.
func getConfigPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return defaultConfigPath
}
