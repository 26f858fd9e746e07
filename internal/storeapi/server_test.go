package storeapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oakmere/weathervane/internal/infrastructure/logging"
	"github.com/oakmere/weathervane/internal/weather"
)

// newTestServer builds a store API over an in-memory SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	schema := `
		CREATE TABLE locations (
			loc_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL, lat REAL NOT NULL, lon REAL NOT NULL, asl REAL NOT NULL
		);
		CREATE TABLE records (
			record_id INTEGER PRIMARY KEY AUTOINCREMENT,
			loc_id INTEGER NOT NULL, ts TEXT NOT NULL,
			temperature REAL NOT NULL, humidity REAL NOT NULL,
			wind_speed REAL NOT NULL, wind_direction REAL NOT NULL,
			FOREIGN KEY (loc_id) REFERENCES locations(loc_id)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	srv, err := New(Deps{
		Logger:  logging.Default("storeapi-test"),
		Repo:    weather.NewSQLiteRepository(db),
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := httptest.NewServer(srv.buildRouter())
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})
	return ts
}

// postForm posts url-encoded values and decodes the JSON response into out.
func postForm(t *testing.T, ts *httptest.Server, path string, values url.Values, out any) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/x-www-form-urlencoded",
		strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding POST %s response: %v", path, err)
		}
	}
	return resp
}

// getJSON performs a GET and returns the raw body and response.
func getJSON(t *testing.T, ts *httptest.Server, path string) (string, *http.Response) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	var sb strings.Builder
	if _, err := io.Copy(&sb, resp.Body); err != nil {
		t.Fatalf("reading GET %s body: %v", path, err)
	}
	return strings.TrimSpace(sb.String()), resp
}

func TestListLocationsEmpty(t *testing.T) {
	ts := newTestServer(t)

	body, resp := getJSON(t, ts, "/locations")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if body != "{}" {
		t.Errorf("empty table should serialize as {}, got %s", body)
	}
}

func TestCreateAndGetLocation(t *testing.T) {
	ts := newTestServer(t)

	var created weather.Location
	resp := postForm(t, ts, "/locations", url.Values{
		"name": {"Brighton"}, "lat": {"50.82"}, "lon": {"-0.14"}, "asl": {"20"},
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}
	if created.LocID == 0 || created.Name != "Brighton" {
		t.Fatalf("created location: %+v", created)
	}

	// Numeric term: lookup by ID.
	body, _ := getJSON(t, ts, "/locations/1")
	var byID weather.Location
	if err := json.Unmarshal([]byte(body), &byID); err != nil {
		t.Fatalf("decoding by-ID response: %v", err)
	}
	if byID.Name != "Brighton" {
		t.Errorf("by-ID: got %+v", byID)
	}

	// Non-numeric term: fuzzy name search returns an array.
	body, _ = getJSON(t, ts, "/locations/Brigh")
	var matches []weather.Location
	if err := json.Unmarshal([]byte(body), &matches); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Brighton" {
		t.Errorf("search: got %+v", matches)
	}

	// Miss on both forms is {}.
	if body, _ := getJSON(t, ts, "/locations/99"); body != "{}" {
		t.Errorf("unknown ID should be {}, got %s", body)
	}
	if body, _ := getJSON(t, ts, "/locations/Zurich"); body != "{}" {
		t.Errorf("no name match should be {}, got %s", body)
	}
}

func TestCreateLocationEmptyName(t *testing.T) {
	ts := newTestServer(t)

	var apiErr Error
	resp := postForm(t, ts, "/locations", url.Values{
		"name": {""}, "lat": {"0"}, "lon": {"0"}, "asl": {"0"},
	}, &apiErr)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}
	if apiErr.Code != errCodeValidation {
		t.Errorf("code: got %q, want %q", apiErr.Code, errCodeValidation)
	}
}

func TestCreateRecordAndQuery(t *testing.T) {
	ts := newTestServer(t)

	postForm(t, ts, "/locations", url.Values{
		"name": {"Brighton"}, "lat": {"50.82"}, "lon": {"-0.14"}, "asl": {"20"},
	}, nil)

	var created weather.Record
	resp := postForm(t, ts, "/records/1", url.Values{
		"ts": {"2024-06-15T12:30"}, "temp": {"18.5"}, "hum": {"60"}, "ws": {"12"}, "wd": {"270"},
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}
	if created.RecordID == 0 || created.Temperature != 18.5 {
		t.Fatalf("created record: %+v", created)
	}
	if created.Date.String() != "2024-06-15T12:30" {
		t.Errorf("timestamp: got %s", created.Date)
	}

	body, _ := getJSON(t, ts, "/records/1")
	var records []weather.Record
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		t.Fatalf("decoding records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	// Inclusive range: both bounds equal to the record's timestamp match it.
	body, _ = getJSON(t, ts, "/records/1/2024-06-15T12:30/2024-06-15T12:30")
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		t.Fatalf("decoding range response: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("inclusive bounds: expected 1 record, got %d", len(records))
	}

	// Empty window is {}.
	if body, _ := getJSON(t, ts, "/records/1/2025-01-01T00:00/2025-01-02T00:00"); body != "{}" {
		t.Errorf("empty window should be {}, got %s", body)
	}
}

func TestCreateRecordUnknownLocation(t *testing.T) {
	ts := newTestServer(t)

	var apiErr Error
	resp := postForm(t, ts, "/records/42", url.Values{
		"ts": {"2024-06-15T12:30"}, "temp": {"1"}, "hum": {"2"}, "ws": {"3"}, "wd": {"4"},
	}, &apiErr)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}
	if apiErr.Code != errCodeUnknownLocation {
		t.Errorf("code: got %q, want %q", apiErr.Code, errCodeUnknownLocation)
	}
}

func TestRangeQueryMalformedTimestamp(t *testing.T) {
	ts := newTestServer(t)

	body, resp := getJSON(t, ts, "/records/1/not-a-date/2024-06-15T12:30")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}
	var apiErr Error
	if err := json.Unmarshal([]byte(body), &apiErr); err != nil {
		t.Fatalf("error payload should be JSON, got %s", body)
	}
	if apiErr.Code != errCodeMalformedTimestamp {
		t.Errorf("code: got %q, want %q", apiErr.Code, errCodeMalformedTimestamp)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	body, resp := getJSON(t, ts, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, `"ok"`) {
		t.Errorf("health body: %s", body)
	}
}
