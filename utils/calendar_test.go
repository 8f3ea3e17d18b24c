package utils

import (
	"testing"
	"time"
)

func TestCalendarDate(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("EST", -5*60*60)
	local := time.Date(2025, 3, 9, 23, 30, 0, 0, loc)

	got := CalendarDate(local)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalendarDate(%v) = %v, want %v", local, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day different hours",
			a:    time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "consecutive days",
			a:    time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "gap of several days",
			a:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC),
			want: 4,
		},
		{
			name: "across month boundary",
			a:    time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "b before a is negative",
			a:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
