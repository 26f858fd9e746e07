package weather

import (
	"fmt"
	"time"
)

// TimeLayout is the wire format for observation timestamps, in JSON bodies
// and in URL path segments alike. It is also the TEXT representation stored
// in SQLite, so lexicographic comparison of stored values matches
// chronological order.
const TimeLayout = "2006-01-02T15:04"

// Timestamp is a minute-precision observation time. The UTC convention is
// assumed throughout; no zone is stored or transmitted.
type Timestamp struct {
	time.Time
}

// NewTimestamp builds a Timestamp from a time.Time, truncated to the minute
// in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Minute)}
}

// Date is a convenience constructor for literal timestamps.
func Date(year int, month time.Month, day, hour, minute int) Timestamp {
	return Timestamp{time.Date(year, month, day, hour, minute, 0, 0, time.UTC)}
}

// ParseTimestamp parses a wire-format timestamp string.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

// String renders the timestamp in the wire format.
func (ts Timestamp) String() string {
	return ts.Format(TimeLayout)
}

// MarshalJSON renders the timestamp as a quoted wire-format string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON parses a quoted wire-format string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp is not a JSON string: %s", s)
	}
	parsed, err := ParseTimestamp(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Location is a named geographic point where weather is observed.
// LocID is assigned by the store on creation and is zero before the first
// persistence. Locations are immutable once created.
type Location struct {
	LocID int64   `json:"locID"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Asl   float64 `json:"asl"`
}

// Record is one timestamped weather observation at a location.
// Units by convention: Celsius, relative humidity, mph, degrees from north.
type Record struct {
	RecordID      int64     `json:"recordID"`
	LocID         int64     `json:"locID"`
	Date          Timestamp `json:"date"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection float64   `json:"windDirection"`
}
