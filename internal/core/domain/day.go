package domain

import "time"

// DayLayout is the wire and storage format of a completion date.
const DayLayout = "2006-01-02"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a completion date into midnight of loc.
// Full RFC3339 timestamps are accepted and reduced to their calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(DayLayout, s, loc); err == nil {
		return t, true
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t.In(loc)), true
	}

	return time.Time{}, false
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// IsValidDay reports whether s is a strict YYYY-MM-DD calendar date.
func IsValidDay(s string) bool {
	_, err := time.Parse(DayLayout, s)
	return err == nil
}
