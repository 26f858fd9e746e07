package storeapi

import (
	"encoding/json"
	"net/http"

	"github.com/oakmere/weathervane/internal/opt"
)

// Error is a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	errCodeBadRequest         = "bad_request"
	errCodeValidation         = "validation_error"
	errCodeUnknownLocation    = "unknown_location"
	errCodeMalformedTimestamp = "malformed_timestamp"
	errCodeInternal           = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeOpt writes the wrapped value, or an empty JSON object when absent.
// The empty object is the wire representation of "nothing matched" and is
// always a 200: absence is a valid answer, not an error.
func writeOpt[T any](w http.ResponseWriter, o opt.Opt[T]) {
	if v, ok := o.Get(); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, code, message string) {
	writeError(w, http.StatusBadRequest, code, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, errCodeInternal, message)
}
