package utils

import "time"

// CalendarDate truncates a timestamp to a UTC calendar date (midnight UTC).
// All streak math runs on these so a user hopping timezones can't double-count
// a day or lose one across a DST boundary.
func CalendarDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (positive when b is
// later). Both inputs are normalized first, so times of day never matter.
func DaysBetween(a, b time.Time) int {
	a = CalendarDate(a)
	b = CalendarDate(b)
	return int(b.Sub(a).Hours() / 24)
}
