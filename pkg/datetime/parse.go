// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/aundre1/incentedge/pkg/constants"
)

// DateTimeLayout is the format expected in project and program records and is
// also the output date format.
const DateTimeLayout = constants.DateTimeLayout

// acceptedLayouts lists the formats tolerated in scraped program records, in
// the order they are tried.
var acceptedLayouts = []string{
	constants.DateTimeLayout,
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"2006-01",
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse parses a record date string, tolerating the handful of formats that
// appear in program catalogs. The boolean reports whether parsing succeeded;
// callers are expected to fail closed when it did not.
func Parse(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the number of calendar days from first to second,
// negative when second precedes first. Time-of-day components are discarded
// so that two timestamps on the same calendar day count as zero days apart.
func DaysBetween(first, second time.Time) int {
	f := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(second.Year(), second.Month(), second.Day(), 0, 0, 0, 0, time.UTC)
	return int(s.Sub(f).Hours() / 24)
}

// WithinWindow reports whether date falls inside [start, end]. An empty bound
// leaves that side of the window unconstrained; a non-empty bound that fails
// to parse closes the window entirely.
func WithinWindow(date time.Time, start, end string) bool {
	if start != "" {
		s, ok := Parse(start)
		if !ok || date.Before(s) {
			return false
		}
	}
	if end != "" {
		e, ok := Parse(end)
		if !ok || date.After(e) {
			return false
		}
	}
	return true
}
