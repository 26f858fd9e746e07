package average

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oakmere/weathervane/internal/opt"
	"github.com/oakmere/weathervane/internal/weather"
)

// Source is the engine's view of the observation store. The HTTP Client
// implements it against the store's REST API; tests substitute their own.
type Source interface {
	Location(ctx context.Context, id int64) (opt.Opt[weather.Location], error)
	Records(ctx context.Context, id int64) (opt.Opt[[]weather.Record], error)
	RecordsBetween(ctx context.Context, id int64, from, to weather.Timestamp) (opt.Opt[[]weather.Record], error)
}

// Client fetches locations and records from the observation store's REST
// API. An empty JSON object body decodes to an absent result; any connect
// failure or non-200 status wraps ErrUpstream. There is deliberately no
// retry and no circuit breaking: upstream failures propagate to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Location fetches one location by ID.
func (c *Client) Location(ctx context.Context, id int64) (opt.Opt[weather.Location], error) {
	var loc weather.Location
	present, err := c.get(ctx, fmt.Sprintf("/locations/%d", id), &loc)
	if err != nil {
		return opt.None[weather.Location](), err
	}
	if !present {
		return opt.None[weather.Location](), nil
	}
	return opt.Some(loc), nil
}

// Records fetches every record for a location.
func (c *Client) Records(ctx context.Context, id int64) (opt.Opt[[]weather.Record], error) {
	return c.getRecords(ctx, fmt.Sprintf("/records/%d", id))
}

// RecordsBetween fetches records for a location in an inclusive time range.
func (c *Client) RecordsBetween(ctx context.Context, id int64, from, to weather.Timestamp) (opt.Opt[[]weather.Record], error) {
	return c.getRecords(ctx, fmt.Sprintf("/records/%d/%s/%s", id, from, to))
}

func (c *Client) getRecords(ctx context.Context, path string) (opt.Opt[[]weather.Record], error) {
	var records []weather.Record
	present, err := c.get(ctx, path, &records)
	if err != nil {
		return opt.None[[]weather.Record](), err
	}
	if !present || len(records) == 0 {
		return opt.None[[]weather.Record](), nil
	}
	return opt.Some(records), nil
}

// get performs a GET against the store and decodes the JSON body into v.
// Returns present=false when the store answered with the empty object that
// marks an absent result.
func (c *Client) get(ctx context.Context, path string, v any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("building request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: GET %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: GET %s: status %d", ErrUpstream, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: GET %s: reading body: %v", ErrUpstream, path, err)
	}

	if isEmptyObject(body) {
		return false, nil
	}

	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("decoding GET %s response: %w", path, err)
	}
	return true, nil
}

// isEmptyObject reports whether the body is the store's absent marker.
func isEmptyObject(body []byte) bool {
	return bytes.Equal(bytes.TrimSpace(body), []byte("{}"))
}
