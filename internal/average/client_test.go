package average

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oakmere/weathervane/internal/weather"
)

// fakeStore maps request paths to canned JSON bodies.
func fakeStore(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClientLocation(t *testing.T) {
	ts := fakeStore(t, map[string]string{
		"/locations/1": `{"locID":1,"name":"Brighton","lat":50.82,"lon":-0.14,"asl":20}`,
		"/locations/2": `{}`,
	})
	client := NewClient(ts.URL, time.Second)
	ctx := context.Background()

	got, err := client.Location(ctx, 1)
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	loc, ok := got.Get()
	if !ok || loc.Name != "Brighton" || loc.LocID != 1 {
		t.Errorf("Location: got %+v", got)
	}

	// The empty object marks absence, not an error.
	got, err = client.Location(ctx, 2)
	if err != nil {
		t.Fatalf("Location absent: %v", err)
	}
	if got.IsSome() {
		t.Error("expected absent for {} body")
	}
}

func TestClientRecords(t *testing.T) {
	ts := fakeStore(t, map[string]string{
		"/records/1": `[{"recordID":1,"locID":1,"date":"2024-06-15T10:00","temperature":10,"humidity":40,"windSpeed":5,"windDirection":90}]`,
		"/records/2": `{}`,
	})
	client := NewClient(ts.URL, time.Second)
	ctx := context.Background()

	got, err := client.Records(ctx, 1)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	recs, ok := got.Get()
	if !ok || len(recs) != 1 {
		t.Fatalf("Records: got %+v", got)
	}
	if recs[0].Date.String() != "2024-06-15T10:00" || recs[0].Temperature != 10 {
		t.Errorf("record: %+v", recs[0])
	}

	got, err = client.Records(ctx, 2)
	if err != nil {
		t.Fatalf("Records absent: %v", err)
	}
	if got.IsSome() {
		t.Error("expected absent for {} body")
	}
}

func TestClientRecordsBetweenPath(t *testing.T) {
	ts := fakeStore(t, map[string]string{
		"/records/1/2024-06-15T00:00/2024-06-15T23:59": `{}`,
	})
	client := NewClient(ts.URL, time.Second)

	from := weather.Date(2024, time.June, 15, 0, 0)
	to := weather.Date(2024, time.June, 15, 23, 59)
	got, err := client.RecordsBetween(context.Background(), 1, from, to)
	if err != nil {
		t.Fatalf("RecordsBetween: %v", err)
	}
	if got.IsSome() {
		t.Error("expected absent for {} body")
	}
}

func TestClientUpstreamDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listening any more

	client := NewClient(url, 250*time.Millisecond)
	_, err := client.Location(context.Background(), 1)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("got %v, want ErrUpstream", err)
	}
}

func TestClientUpstreamErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, time.Second)
	_, err := client.Records(context.Background(), 1)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("got %v, want ErrUpstream", err)
	}
}
