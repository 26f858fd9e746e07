package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for both Weathervane services.
// One file configures both binaries; each reads only its own section
// plus the shared logging settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Store    StoreConfig    `yaml:"store"`
	Averages AveragesConfig `yaml:"averages"`
}

// LoggingConfig contains logging settings shared by both services.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// StoreConfig configures the observation store service.
type StoreConfig struct {
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
}

// AveragesConfig configures the averages service.
type AveragesConfig struct {
	API      APIConfig      `yaml:"api"`
	Upstream UpstreamConfig `yaml:"upstream"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// DatabaseConfig contains SQLite settings for the store.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// UpstreamConfig points the averages service at the store's REST API.
type UpstreamConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// Loading order: hardcoded defaults, then file values, then environment
// variables (pattern WEATHERVANE_SECTION_KEY, e.g. WEATHERVANE_DATABASE_PATH).
// A .env file in the working directory is honoured if present.
func Load(path string) (*Config, error) {
	// Best effort: a .env file is optional in every environment.
	_ = godotenv.Load()

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults for local use.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Store: StoreConfig{
			API: APIConfig{
				Host: "0.0.0.0",
				Port: 4567,
				Timeouts: APITimeoutConfig{
					Read:  30,
					Write: 30,
					Idle:  60,
				},
			},
			Database: DatabaseConfig{
				Path:        "./data/weathervane.db",
				WALMode:     true,
				BusyTimeout: 5,
			},
		},
		Averages: AveragesConfig{
			API: APIConfig{
				Host: "0.0.0.0",
				Port: 4568,
				Timeouts: APITimeoutConfig{
					Read:  30,
					Write: 30,
					Idle:  60,
				},
			},
			Upstream: UpstreamConfig{
				BaseURL: "http://localhost:4567",
				Timeout: 30,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEATHERVANE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WEATHERVANE_DATABASE_PATH"); v != "" {
		cfg.Store.Database.Path = v
	}
	if v := os.Getenv("WEATHERVANE_STORE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Store.API.Port = port
		}
	}
	if v := os.Getenv("WEATHERVANE_AVG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Averages.API.Port = port
		}
	}
	if v := os.Getenv("WEATHERVANE_UPSTREAM_URL"); v != "" {
		cfg.Averages.Upstream.BaseURL = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Store.Database.Path == "" {
		errs = append(errs, "store.database.path is required")
	}
	if c.Store.API.Port < 1 || c.Store.API.Port > 65535 {
		errs = append(errs, "store.api.port must be between 1 and 65535")
	}
	if c.Averages.API.Port < 1 || c.Averages.API.Port > 65535 {
		errs = append(errs, "averages.api.port must be between 1 and 65535")
	}
	if c.Averages.Upstream.BaseURL == "" {
		errs = append(errs, "averages.upstream.base_url is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ReadTimeout returns the read timeout as a Duration.
func (a APIConfig) ReadTimeout() time.Duration {
	return time.Duration(a.Timeouts.Read) * time.Second
}

// WriteTimeout returns the write timeout as a Duration.
func (a APIConfig) WriteTimeout() time.Duration {
	return time.Duration(a.Timeouts.Write) * time.Second
}

// IdleTimeout returns the idle timeout as a Duration.
func (a APIConfig) IdleTimeout() time.Duration {
	return time.Duration(a.Timeouts.Idle) * time.Second
}

// ClientTimeout returns the upstream HTTP client timeout as a Duration.
func (u UpstreamConfig) ClientTimeout() time.Duration {
	return time.Duration(u.Timeout) * time.Second
}
