package average

import (
	"time"

	"github.com/oakmere/weathervane/internal/weather"
)

// isLeapYear applies the proleptic Gregorian rule: divisible by 4, except
// centuries not divisible by 400.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// lastDayOfMonth returns the last calendar day of a month, leap-year aware.
func lastDayOfMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// monthWindow returns the inclusive window for a calendar month. Both
// bounds carry a 00:00 time, so the final day of the month contributes only
// records stamped exactly midnight.
func monthWindow(year int, month time.Month) (from, to weather.Timestamp) {
	from = weather.Date(year, month, 1, 0, 0)
	to = weather.Date(year, month, lastDayOfMonth(year, month), 0, 0)
	return from, to
}

// dayWindow returns the inclusive window for a single day. The end bound is
// 23:59, not end-of-day; timestamps are minute-granular on the wire, so no
// stored record can land in the uncovered final minute.
func dayWindow(year int, month time.Month, day int) (from, to weather.Timestamp) {
	from = weather.Date(year, month, day, 0, 0)
	to = weather.Date(year, month, day, 23, 59)
	return from, to
}
