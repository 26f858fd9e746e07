package logging

import (
	"log/slog"
	"testing"

	"github.com/oakmere/weathervane/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "warn", Format: "text"}, "test", "dev")

	if logger.Enabled(nil, slog.LevelInfo) { //nolint:staticcheck // nil ctx accepted by slog
		t.Error("info should be filtered at warn level")
	}
	if !logger.Enabled(nil, slog.LevelError) { //nolint:staticcheck // nil ctx accepted by slog
		t.Error("error should pass at warn level")
	}
}

func TestWithReturnsNewLogger(t *testing.T) {
	base := Default("test")
	child := base.With("component", "repository")
	if child == base {
		t.Error("With should return a new logger")
	}
	if child.Logger == nil {
		t.Error("child logger should be usable")
	}
}
