package average

import "errors"

var (
	// ErrNoRecords is returned when a reduction is attempted over zero
	// records. The mean of an empty set is undefined, so this is fatal to
	// the request rather than silently zero.
	ErrNoRecords = errors.New("no records to average")

	// ErrLocationNotFound is returned when the store has no location for
	// the requested ID.
	ErrLocationNotFound = errors.New("location not found")

	// ErrUpstream is returned when the observation store cannot be reached
	// or answers with an unexpected status. The failure propagates to the
	// caller; there is no retry and no fallback.
	ErrUpstream = errors.New("observation store unavailable")

	// ErrInvalidWindow is returned for out-of-range month or day arguments.
	ErrInvalidWindow = errors.New("invalid date window")
)
