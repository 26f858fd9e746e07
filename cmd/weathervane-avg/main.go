// weathervane-avg serves the averages API. It holds no state of its own:
// every request fetches the relevant location and records from the
// observation store and reduces them on the fly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oakmere/weathervane/internal/average"
	"github.com/oakmere/weathervane/internal/avgapi"
	"github.com/oakmere/weathervane/internal/infrastructure/config"
	"github.com/oakmere/weathervane/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
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
	log := logging.Default("weathervane-avg")
	log.Info("starting averages service", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, "weathervane-avg", version)

	client := average.NewClient(cfg.Averages.Upstream.BaseURL, cfg.Averages.Upstream.ClientTimeout())
	engine := average.NewEngine(client, log)
	log.Info("observation store configured", "base_url", cfg.Averages.Upstream.BaseURL)

	server, err := avgapi.New(avgapi.Deps{
		Config:  cfg.Averages.API,
		Logger:  log,
		Engine:  engine,
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
