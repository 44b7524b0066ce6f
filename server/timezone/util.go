// Package timezone provides timezone utilities for the cardloop server.
//
// This package handles timezone parsing and calendar-day boundary math
// to ensure consistent time handling across the scheduler.
package timezone

import (
	"fmt"
	"time"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Seoul").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// MustParseTimezone parses a timezone or panics if invalid.
// Use this for constants that are known to be valid at compile time.
func MustParseTimezone(tz string) *time.Location {
	loc, err := ParseTimezone(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	if tz == "" || tz == "UTC" {
		return true
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// StartOfDay returns midnight of the calendar day containing t,
// in t's own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats t as a calendar-day key (YYYY-MM-DD) in t's location.
// Used for streak and completed-today grouping.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
