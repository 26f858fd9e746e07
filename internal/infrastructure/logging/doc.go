// Package logging provides structured logging for the Weathervane services.
//
// It wraps log/slog so both binaries log the same way: JSON or text output
// selected from config, level-based filtering, and service/version fields
// attached to every entry.
//
// Usage:
//
//	logger := logging.New(cfg.Logging, "weathervane-store", "1.0.0")
//	logger.Info("starting service", "port", 4567)
package logging
