package avgapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/{loc}/{type}", s.handleAllTime)
	r.Get("/{loc}/{type}/{year}/{month}", s.handleMonth)
	r.Get("/{loc}/{type}/{year}/{month}/{day}", s.handleDay)

	return r
}

// handleHealth returns the service health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
