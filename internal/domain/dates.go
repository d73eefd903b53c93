package domain

import "time"

const isoDateLayout = "2006-01-02"

// ParseISODate accepts YYYY-MM-DD or a full RFC 3339 timestamp and returns the
// date truncated to midnight UTC.
func ParseISODate(s string) (time.Time, bool) {
	if t, err := time.Parse(isoDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// Today returns the current date truncated to midnight UTC. Date-only
// comparisons against listing start/end dates go through this.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
