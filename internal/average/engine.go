package average

import (
	"context"
	"fmt"
	"time"

	"github.com/oakmere/weathervane/internal/infrastructure/logging"
	"github.com/oakmere/weathervane/internal/weather"
)

// Engine computes averages by composing fetches against a Source.
//
// Every operation performs one-to-two sequential outbound calls (location,
// then records) followed by a local reduction. The calls share no
// transaction; records created between them are simply included or not.
type Engine struct {
	source Source
	logger *logging.Logger
}

// NewEngine creates an Engine over the given record source.
func NewEngine(source Source, logger *logging.Logger) *Engine {
	return &Engine{
		source: source,
		logger: logger,
	}
}

// ForLocation averages a metric over every record at a location.
func (e *Engine) ForLocation(ctx context.Context, locID int64, metric Metric) (Average, error) {
	loc, err := e.fetchLocation(ctx, locID)
	if err != nil {
		return Average{}, err
	}

	records, err := e.source.Records(ctx, locID)
	if err != nil {
		return Average{}, fmt.Errorf("fetching records for location %d: %w", locID, err)
	}
	recs, ok := records.Get()
	if !ok {
		return Average{}, fmt.Errorf("location %d: %w", locID, ErrNoRecords)
	}

	return reduce(loc, recs, metric)
}

// ForMonth averages a metric over one calendar month, leap-year aware.
func (e *Engine) ForMonth(ctx context.Context, locID int64, metric Metric, year, month int) (Average, error) {
	if month < 1 || month > 12 {
		return Average{}, fmt.Errorf("month %d: %w", month, ErrInvalidWindow)
	}
	from, to := monthWindow(year, time.Month(month))
	return e.forWindow(ctx, locID, metric, from, to)
}

// ForDay averages a metric over a single day (window 00:00 to 23:59).
func (e *Engine) ForDay(ctx context.Context, locID int64, metric Metric, year, month, day int) (Average, error) {
	if month < 1 || month > 12 {
		return Average{}, fmt.Errorf("month %d: %w", month, ErrInvalidWindow)
	}
	if day < 1 || day > lastDayOfMonth(year, time.Month(month)) {
		return Average{}, fmt.Errorf("day %d: %w", day, ErrInvalidWindow)
	}
	from, to := dayWindow(year, time.Month(month), day)
	return e.forWindow(ctx, locID, metric, from, to)
}

// forWindow fetches the location and the windowed records, then reduces.
func (e *Engine) forWindow(ctx context.Context, locID int64, metric Metric, from, to weather.Timestamp) (Average, error) {
	loc, err := e.fetchLocation(ctx, locID)
	if err != nil {
		return Average{}, err
	}

	records, err := e.source.RecordsBetween(ctx, locID, from, to)
	if err != nil {
		return Average{}, fmt.Errorf("fetching records for location %d in [%s, %s]: %w",
			locID, from, to, err)
	}
	recs, ok := records.Get()
	if !ok {
		return Average{}, fmt.Errorf("location %d in [%s, %s]: %w", locID, from, to, ErrNoRecords)
	}

	e.logger.Debug("reducing records",
		"loc_id", locID, "metric", metric, "from", from, "to", to, "count", len(recs))

	return reduce(loc, recs, metric)
}

// fetchLocation resolves the location or fails with ErrLocationNotFound.
func (e *Engine) fetchLocation(ctx context.Context, locID int64) (weather.Location, error) {
	loc, err := e.source.Location(ctx, locID)
	if err != nil {
		return weather.Location{}, fmt.Errorf("fetching location %d: %w", locID, err)
	}
	l, ok := loc.Get()
	if !ok {
		return weather.Location{}, fmt.Errorf("location %d: %w", locID, ErrLocationNotFound)
	}
	return l, nil
}
