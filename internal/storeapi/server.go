// Package storeapi provides the REST API of the weather observation store.
//
// It exposes location and record creation plus the query surface the
// averages service composes over: by ID, by fuzzy name, by location, and by
// inclusive time range. Absent results serialize as an empty JSON object, so
// clients can tell "nothing matched" from a transport failure.
//
// The server follows the usual lifecycle:
//
//	server, err := storeapi.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package storeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oakmere/weathervane/internal/infrastructure/config"
	"github.com/oakmere/weathervane/internal/infrastructure/database"
	"github.com/oakmere/weathervane/internal/infrastructure/logging"
	"github.com/oakmere/weathervane/internal/weather"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the store API server.
type Deps struct {
	Config  config.APIConfig
	Logger  *logging.Logger
	Repo    weather.Repository
	DB      *database.DB // health checks; may be nil in tests
	Version string
}

// Server is the HTTP server for the observation store.
type Server struct {
	cfg      config.APIConfig
	logger   *logging.Logger
	repo     weather.Repository
	db       *database.DB
	version  string
	validate *validator.Validate
	server   *http.Server
}

// New creates a store API server. It is not listening until Start is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Repo == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		repo:     deps.Repo,
		db:       deps.DB,
		version:  deps.Version,
		validate: validator.New(),
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
func (s *Server) Start(_ context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("store API server error", "error", err)
		}
	}()

	s.logger.Info("store API listening", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down store API: %w", err)
	}
	return nil
}

// handleHealth returns the service health status, including database
// reachability when a DB handle is present.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, errCodeInternal, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
