package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store.API.Port != 4567 {
		t.Errorf("store port: got %d, want 4567", cfg.Store.API.Port)
	}
	if cfg.Averages.API.Port != 4568 {
		t.Errorf("averages port: got %d, want 4568", cfg.Averages.API.Port)
	}
	if cfg.Averages.Upstream.BaseURL != "http://localhost:4567" {
		t.Errorf("upstream: got %q", cfg.Averages.Upstream.BaseURL)
	}
	if !cfg.Store.Database.WALMode {
		t.Error("expected WAL mode on by default")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: text
store:
  api:
    port: 9001
  database:
    path: /tmp/test.db
averages:
  upstream:
    base_url: http://store.internal:9001
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
	if cfg.Store.API.Port != 9001 {
		t.Errorf("store port: got %d, want 9001", cfg.Store.API.Port)
	}
	if cfg.Store.Database.Path != "/tmp/test.db" {
		t.Errorf("db path: got %q", cfg.Store.Database.Path)
	}
	if cfg.Averages.Upstream.BaseURL != "http://store.internal:9001" {
		t.Errorf("upstream: got %q", cfg.Averages.Upstream.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WEATHERVANE_DATABASE_PATH", "/var/lib/wv/store.db")
	t.Setenv("WEATHERVANE_STORE_PORT", "7000")
	t.Setenv("WEATHERVANE_UPSTREAM_URL", "http://upstream:7000")

	path := writeConfig(t, "store:\n  api:\n    port: 9001\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store.Database.Path != "/var/lib/wv/store.db" {
		t.Errorf("db path: got %q", cfg.Store.Database.Path)
	}
	if cfg.Store.API.Port != 7000 {
		t.Errorf("env should win over file: got %d", cfg.Store.API.Port)
	}
	if cfg.Averages.Upstream.BaseURL != "http://upstream:7000" {
		t.Errorf("upstream: got %q", cfg.Averages.Upstream.BaseURL)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "store:\n  api:\n    port: 99999\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
