package storeapi

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

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", s.handleListLocations)
		r.Post("/", s.handleCreateLocation)
		// {term} is a numeric ID or a fuzzy name search term.
		r.Get("/{term}", s.handleGetLocation)
	})

	r.Route("/records", func(r chi.Router) {
		r.Get("/", s.handleListRecords)
		r.Route("/{loc}", func(r chi.Router) {
			r.Get("/", s.handleListRecordsForLocation)
			r.Post("/", s.handleCreateRecord)
			r.Get("/{from}/{to}", s.handleListRecordsInRange)
		})
	})

	return r
}
