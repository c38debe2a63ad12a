// Package timeutil normalizes the timestamp formats used by the external
// sources into comparable instants and renders them for reports.
package timeutil

import (
	"sync"
	"time"
)

var (
	serverZoneOnce sync.Once
	serverZone     *time.Location
)

// ServerZone returns the NA game server's reference time zone.
// Falls back to UTC if the zone database is unavailable.
func ServerZone() *time.Location {
	serverZoneOnce.Do(func() {
		loc, err := time.LoadLocation("America/Los_Angeles")
		if err != nil {
			loc = time.UTC
		}
		serverZone = loc
	})
	return serverZone
}

// ServerNow returns the current time in the NA server's zone.
func ServerNow() time.Time {
	return time.Now().In(ServerZone())
}

// FromEpoch converts epoch seconds (the schedule API's timestamp format)
// to a UTC instant.
func FromEpoch(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// ParseISO parses an ISO-8601 timestamp as used by the feed source.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// DateOnly renders an instant as a calendar date.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

// YearMonth renders an instant at month granularity.
func YearMonth(t time.Time) string {
	return t.Format("2006-01")
}
