package average

import "github.com/oakmere/weathervane/internal/weather"

// Metric identifies which observation field is averaged.
type Metric string

const (
	MetricTemperature   Metric = "TEMPERATURE"
	MetricHumidity      Metric = "HUMIDITY"
	MetricWindSpeed     Metric = "WIND_SPEED"
	MetricWindDirection Metric = "WIND_DIRECTION"
)

// MetricFromCode maps a wire short code to a Metric. The codes are
// case-sensitive; anything unrecognised (including "TEMP" and the empty
// string) silently selects temperature; a bad code is never an error.
func MetricFromCode(code string) Metric {
	switch code {
	case "HU":
		return MetricHumidity
	case "WS":
		return MetricWindSpeed
	case "WD":
		return MetricWindDirection
	default:
		return MetricTemperature
	}
}

// value extracts the metric's field from a record. Unknown metrics fall
// back to temperature, mirroring MetricFromCode.
func (m Metric) value(rec weather.Record) float64 {
	switch m {
	case MetricHumidity:
		return rec.Humidity
	case MetricWindSpeed:
		return rec.WindSpeed
	case MetricWindDirection:
		return rec.WindDirection
	default:
		return rec.Temperature
	}
}
