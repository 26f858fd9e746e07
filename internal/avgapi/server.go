// Package avgapi provides the REST API of the averages service.
//
// Routes follow the pattern /{loc}/{type}[/{year}/{month}[/{day}]]: the
// metric type is a short code (HU, WS, WD, anything else meaning
// temperature) and the optional date parts narrow the averaging window from
// all-time to a calendar month or a single day.
package avgapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oakmere/weathervane/internal/average"
	"github.com/oakmere/weathervane/internal/infrastructure/config"
	"github.com/oakmere/weathervane/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the averages API server.
type Deps struct {
	Config  config.APIConfig
	Logger  *logging.Logger
	Engine  *average.Engine
	Version string
}

// Server is the HTTP server for the averages service.
type Server struct {
	cfg     config.APIConfig
	logger  *logging.Logger
	engine  *average.Engine
	version string
	server  *http.Server
}

// New creates an averages API server. It is not listening until Start is
// called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	return &Server{
		cfg:     deps.Config,
		logger:  deps.Logger,
		engine:  deps.Engine,
		version: deps.Version,
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
			s.logger.Error("averages API server error", "error", err)
		}
	}()

	s.logger.Info("averages API listening", "address", s.server.Addr)
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
		return fmt.Errorf("shutting down averages API: %w", err)
	}
	return nil
}
