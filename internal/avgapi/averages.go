package avgapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oakmere/weathervane/internal/average"
)

// handleAllTime averages a metric over every record at a location.
func (s *Server) handleAllTime(w http.ResponseWriter, r *http.Request) {
	locID, metric, ok := s.locAndMetric(w, r)
	if !ok {
		return
	}

	avg, err := s.engine.ForLocation(r.Context(), locID, metric)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}

// handleMonth averages a metric over one calendar month.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	locID, metric, ok := s.locAndMetric(w, r)
	if !ok {
		return
	}
	year, ok := s.intParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := s.intParam(w, r, "month")
	if !ok {
		return
	}

	avg, err := s.engine.ForMonth(r.Context(), locID, metric, year, month)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}

// handleDay averages a metric over a single day.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	locID, metric, ok := s.locAndMetric(w, r)
	if !ok {
		return
	}
	year, ok := s.intParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := s.intParam(w, r, "month")
	if !ok {
		return
	}
	day, ok := s.intParam(w, r, "day")
	if !ok {
		return
	}

	avg, err := s.engine.ForDay(r.Context(), locID, metric, year, month, day)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}

// locAndMetric parses the {loc} and {type} path segments. The metric code
// never fails: unrecognised codes mean temperature.
func (s *Server) locAndMetric(w http.ResponseWriter, r *http.Request) (int64, average.Metric, bool) {
	locID, err := strconv.ParseInt(chi.URLParam(r, "loc"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "location id must be numeric")
		return 0, "", false
	}
	return locID, average.MetricFromCode(chi.URLParam(r, "type")), true
}

// intParam parses a numeric path segment, writing a 400 on failure.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, name+" must be numeric")
		return 0, false
	}
	return v, true
}

// writeEngineError maps engine failures onto HTTP responses without
// retrying or degrading: an unreachable store is the caller's problem.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, average.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, errCodeNotFound, "location not found")
	case errors.Is(err, average.ErrNoRecords):
		writeError(w, http.StatusNotFound, errCodeEmptyResult, "no records in the requested window")
	case errors.Is(err, average.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "invalid date window")
	case errors.Is(err, average.ErrUpstream):
		s.logger.Error("observation store unreachable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, errCodeUpstream, "observation store unavailable")
	default:
		s.logger.Error("computing average", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, errCodeInternal, "failed to compute average")
	}
}
