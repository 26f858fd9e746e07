package average

import (
	"testing"
	"time"
)

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2023, false},
		{2000, true},  // century divisible by 400
		{1900, false}, // century not divisible by 400
		{1600, true},
		{2100, false},
	}
	for _, c := range cases {
		if got := isLeapYear(c.year); got != c.want {
			t.Errorf("isLeapYear(%d): got %v, want %v", c.year, got, c.want)
		}
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.January, 31},
		{2024, time.April, 30},
		{2024, time.June, 30},
		{2024, time.September, 30},
		{2024, time.November, 30},
		{2024, time.December, 31},
	}
	for _, c := range cases {
		if got := lastDayOfMonth(c.year, c.month); got != c.want {
			t.Errorf("lastDayOfMonth(%d, %s): got %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := monthWindow(2024, time.February)
	if from.String() != "2024-02-01T00:00" {
		t.Errorf("from: got %s", from)
	}
	// End bound stays at midnight of the last day.
	if to.String() != "2024-02-29T00:00" {
		t.Errorf("to: got %s", to)
	}

	from, to = monthWindow(2023, time.February)
	if from.String() != "2023-02-01T00:00" || to.String() != "2023-02-28T00:00" {
		t.Errorf("non-leap February: got [%s, %s]", from, to)
	}
}

func TestDayWindow(t *testing.T) {
	from, to := dayWindow(2024, time.June, 15)
	if from.String() != "2024-06-15T00:00" {
		t.Errorf("from: got %s", from)
	}
	if to.String() != "2024-06-15T23:59" {
		t.Errorf("to: got %s", to)
	}

	// The 23:59 end bound excludes anything later on the same day: a
	// record at 23:59:30 compares after the bound and falls outside.
	boundary := time.Date(2024, time.June, 15, 23, 59, 30, 0, time.UTC)
	if !boundary.After(to.Time) {
		t.Error("23:59:30 should fall after the day window's end bound")
	}
}
