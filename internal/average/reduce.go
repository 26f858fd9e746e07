package average

import "github.com/oakmere/weathervane/internal/weather"

// Average is a computed summary of one metric across a set of records.
// From and To are the minimum and maximum timestamps among the contributing
// records, the span actually observed rather than the requested window.
// It is built fresh per request and never stored.
type Average struct {
	Location weather.Location  `json:"location"`
	From     weather.Timestamp `json:"from"`
	To       weather.Timestamp `json:"to"`
	Average  float64           `json:"average"`
	Type     Metric            `json:"type"`
}

// reduce computes the arithmetic mean of the selected metric over the
// supplied records. Returns ErrNoRecords for an empty set: the mean and the
// min/max timestamps are undefined over zero elements.
func reduce(loc weather.Location, records []weather.Record, metric Metric) (Average, error) {
	if len(records) == 0 {
		return Average{}, ErrNoRecords
	}

	sum := 0.0
	from := records[0].Date
	to := records[0].Date
	for _, rec := range records {
		sum += metric.value(rec)
		if rec.Date.Before(from.Time) {
			from = rec.Date
		}
		if rec.Date.After(to.Time) {
			to = rec.Date
		}
	}

	return Average{
		Location: loc,
		From:     from,
		To:       to,
		Average:  sum / float64(len(records)),
		Type:     metric,
	}, nil
}
