// Package biztime provides utilities for billing time calculations.
// All storage and transport use UTC; discount windows and trial boundaries
// are always computed against explicit instants, never the implicit local
// clock.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// AddCalendarMonths advances t by n calendar months in UTC.
// Month-end overflow follows time.AddDate semantics (Jan 31 + 1 month = Mar 3
// on non-leap years), which matches how the billing provider rolls windows.
func AddCalendarMonths(t time.Time, n int) time.Time {
	return t.UTC().AddDate(0, n, 0)
}

// ISO8601 formats t as an ISO-8601 / RFC 3339 UTC string.
func ISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ISO8601Ptr formats t as ISO-8601, returning nil for a nil input.
func ISO8601Ptr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := ISO8601(*t)
	return &s
}
