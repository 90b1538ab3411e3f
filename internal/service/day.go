package service

import "time"

// dateLayout is the calendar-day wire format.
const dateLayout = "2006-01-02"

// parseDay parses a wire date into the canonical day start (UTC
// midnight).
func parseDay(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// dayWindow returns the canonical half-open window [dayStart,
// dayStart+24h) covering the calendar day of t. Every "same day"
// comparison in the system goes through this one function so the
// submission-existence check and the point-date filter can never
// disagree about day boundaries.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
