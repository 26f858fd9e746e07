package storeapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// createLocationParams carries the POST /locations parameters.
type createLocationParams struct {
	Name string `validate:"required"`
	Lat  float64
	Lon  float64
	Asl  float64
}

// handleListLocations returns every location, or {} if there are none.
func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.repo.Locations(r.Context())
	if err != nil {
		s.logger.Error("listing locations", "error", err)
		writeInternalError(w, "failed to list locations")
		return
	}
	writeOpt(w, locations)
}

// handleCreateLocation creates a location from name/lat/lon/asl parameters
// and echoes the stored row back.
func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	params := createLocationParams{Name: r.FormValue("name")}

	var err error
	if params.Lat, err = parseFloatParam(r, "lat"); err != nil {
		writeBadRequest(w, errCodeBadRequest, "lat must be a number")
		return
	}
	if params.Lon, err = parseFloatParam(r, "lon"); err != nil {
		writeBadRequest(w, errCodeBadRequest, "lon must be a number")
		return
	}
	if params.Asl, err = parseFloatParam(r, "asl"); err != nil {
		writeBadRequest(w, errCodeBadRequest, "asl must be a number")
		return
	}

	if err := s.validate.Struct(params); err != nil {
		writeBadRequest(w, errCodeValidation, "name must not be empty")
		return
	}

	ctx := r.Context()
	id, err := s.repo.CreateLocation(ctx, params.Name, params.Lat, params.Lon, params.Asl)
	if err != nil {
		s.logger.Error("creating location", "error", err)
		writeInternalError(w, "failed to create location")
		return
	}
	s.logger.Info("location created", "loc_id", id, "name", params.Name)

	created, err := s.repo.Location(ctx, id)
	if err != nil {
		s.logger.Error("reading back created location", "loc_id", id, "error", err)
		writeInternalError(w, "failed to read created location")
		return
	}
	if loc, ok := created.Get(); ok {
		writeJSON(w, http.StatusCreated, loc)
		return
	}
	writeInternalError(w, "created location missing")
}

// handleGetLocation resolves the {term} path segment: a numeric term looks
// up one location by ID, anything else is a contains-match on names.
func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	ctx := r.Context()

	if id, err := strconv.ParseInt(term, 10, 64); err == nil {
		loc, err := s.repo.Location(ctx, id)
		if err != nil {
			s.logger.Error("getting location", "loc_id", id, "error", err)
			writeInternalError(w, "failed to get location")
			return
		}
		writeOpt(w, loc)
		return
	}

	matches, err := s.repo.LocationsByName(ctx, term)
	if err != nil {
		s.logger.Error("searching locations", "term", term, "error", err)
		writeInternalError(w, "failed to search locations")
		return
	}
	writeOpt(w, matches)
}

// parseFloatParam parses a float query/form parameter.
func parseFloatParam(r *http.Request, name string) (float64, error) {
	return strconv.ParseFloat(r.FormValue(name), 64)
}
