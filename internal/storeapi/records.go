package storeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oakmere/weathervane/internal/weather"
)

// handleListRecords returns every record, or {} if there are none.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.Records(r.Context())
	if err != nil {
		s.logger.Error("listing records", "error", err)
		writeInternalError(w, "failed to list records")
		return
	}
	writeOpt(w, records)
}

// handleListRecordsForLocation returns all records at one location.
func (s *Server) handleListRecordsForLocation(w http.ResponseWriter, r *http.Request) {
	locID, ok := s.locParam(w, r)
	if !ok {
		return
	}

	records, err := s.repo.RecordsFor(r.Context(), locID)
	if err != nil {
		s.logger.Error("listing records for location", "loc_id", locID, "error", err)
		writeInternalError(w, "failed to list records")
		return
	}
	writeOpt(w, records)
}

// handleListRecordsInRange returns records at a location between the {from}
// and {to} path timestamps, inclusive on both bounds. An unparsable
// timestamp becomes a JSON error payload, never a bare transport failure.
func (s *Server) handleListRecordsInRange(w http.ResponseWriter, r *http.Request) {
	locID, ok := s.locParam(w, r)
	if !ok {
		return
	}

	from, err := weather.ParseTimestamp(chi.URLParam(r, "from"))
	if err != nil {
		writeBadRequest(w, errCodeMalformedTimestamp, "from must be yyyy-MM-ddTHH:mm")
		return
	}
	to, err := weather.ParseTimestamp(chi.URLParam(r, "to"))
	if err != nil {
		writeBadRequest(w, errCodeMalformedTimestamp, "to must be yyyy-MM-ddTHH:mm")
		return
	}

	records, err := s.repo.RecordsBetween(r.Context(), locID, from, to)
	if err != nil {
		s.logger.Error("listing records in range",
			"loc_id", locID, "from", from, "to", to, "error", err)
		writeInternalError(w, "failed to list records")
		return
	}
	writeOpt(w, records)
}

// handleCreateRecord creates an observation from ts/temp/hum/ws/wd
// parameters and echoes the stored row back.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	locID, ok := s.locParam(w, r)
	if !ok {
		return
	}

	ts, err := weather.ParseTimestamp(r.FormValue("ts"))
	if err != nil {
		writeBadRequest(w, errCodeMalformedTimestamp, "ts must be yyyy-MM-ddTHH:mm")
		return
	}

	rec := weather.Record{LocID: locID, Date: ts}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"temp", &rec.Temperature},
		{"hum", &rec.Humidity},
		{"ws", &rec.WindSpeed},
		{"wd", &rec.WindDirection},
	}
	for _, f := range fields {
		if *f.dst, err = parseFloatParam(r, f.name); err != nil {
			writeBadRequest(w, errCodeBadRequest, f.name+" must be a number")
			return
		}
	}

	ctx := r.Context()
	id, err := s.repo.CreateRecord(ctx, rec)
	if err != nil {
		if errors.Is(err, weather.ErrUnknownLocation) {
			writeBadRequest(w, errCodeUnknownLocation, "location does not exist")
			return
		}
		s.logger.Error("creating record", "loc_id", locID, "error", err)
		writeInternalError(w, "failed to create record")
		return
	}
	s.logger.Info("record created", "record_id", id, "loc_id", locID, "ts", ts)

	created, err := s.repo.Record(ctx, id)
	if err != nil {
		s.logger.Error("reading back created record", "record_id", id, "error", err)
		writeInternalError(w, "failed to read created record")
		return
	}
	if stored, ok := created.Get(); ok {
		writeJSON(w, http.StatusCreated, stored)
		return
	}
	writeInternalError(w, "created record missing")
}

// locParam parses the numeric {loc} path segment, writing a 400 on failure.
func (s *Server) locParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	locID, err := strconv.ParseInt(chi.URLParam(r, "loc"), 10, 64)
	if err != nil {
		writeBadRequest(w, errCodeBadRequest, "location id must be numeric")
		return 0, false
	}
	return locID, true
}
