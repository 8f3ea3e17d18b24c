package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func TestAdvance_FirstActivity(t *testing.T) {
	s := &Streak{UserID: uuid.New()}

	incremented := Advance(s, "login", day(1))

	if !incremented {
		t.Error("first activity should count as an increment")
	}
	if s.CurrentStreak != 1 || s.LongestStreak != 1 {
		t.Errorf("got current=%d longest=%d, want 1/1", s.CurrentStreak, s.LongestStreak)
	}
	if s.StreakStartDate == nil || !s.StreakStartDate.Equal(day(1)) {
		t.Errorf("streak start = %v, want %v", s.StreakStartDate, day(1))
	}
	if s.LastActivityType != "login" {
		t.Errorf("last activity type = %q, want login", s.LastActivityType)
	}
}

func TestAdvance_ConsecutiveDays(t *testing.T) {
	s := &Streak{UserID: uuid.New()}

	const n = 10
	for i := 1; i <= n; i++ {
		Advance(s, "journal", day(i))
	}

	if s.CurrentStreak != n {
		t.Errorf("after %d consecutive days current=%d", n, s.CurrentStreak)
	}
	if s.LongestStreak != n {
		t.Errorf("after %d consecutive days longest=%d", n, s.LongestStreak)
	}
	if !s.StreakStartDate.Equal(day(1)) {
		t.Errorf("streak start moved to %v", s.StreakStartDate)
	}
}

func TestAdvance_SameDayIsNoOp(t *testing.T) {
	s := &Streak{UserID: uuid.New()}
	Advance(s, "login", day(1))
	Advance(s, "login", day(2))

	// Second credit on the same calendar day, different hour.
	incremented := Advance(s, "journal", day(2).Add(18*time.Hour))

	if incremented {
		t.Error("second activity on the same day must not increment")
	}
	if s.CurrentStreak != 2 {
		t.Errorf("current=%d, want 2", s.CurrentStreak)
	}
}

func TestAdvance_GapResetsCurrentNotLongest(t *testing.T) {
	s := &Streak{UserID: uuid.New()}
	Advance(s, "login", day(1))
	Advance(s, "login", day(2))

	// Two missed days (day 3 and 4), activity returns on day 5.
	incremented := Advance(s, "login", day(5))

	if !incremented {
		t.Error("activity after a gap starts a new streak, which counts as an increment")
	}
	if s.CurrentStreak != 1 {
		t.Errorf("current=%d after gap, want 1", s.CurrentStreak)
	}
	if s.LongestStreak != 2 {
		t.Errorf("longest=%d after gap, want pre-gap maximum 2", s.LongestStreak)
	}
	if !s.StreakStartDate.Equal(day(5)) {
		t.Errorf("streak start = %v, want %v", s.StreakStartDate, day(5))
	}
}

func TestAdvance_LongestNeverBelowCurrent(t *testing.T) {
	s := &Streak{UserID: uuid.New()}
	days := []int{1, 2, 3, 7, 8, 9, 10, 11, 20, 21}

	for _, d := range days {
		Advance(s, "addiction", day(d))
		if s.LongestStreak < s.CurrentStreak {
			t.Fatalf("invariant violated on day %d: longest=%d < current=%d",
				d, s.LongestStreak, s.CurrentStreak)
		}
	}
	if s.LongestStreak != 5 {
		t.Errorf("longest=%d, want 5 (days 7-11)", s.LongestStreak)
	}
}

func TestAdvance_NormalizesTimezones(t *testing.T) {
	s := &Streak{UserID: uuid.New()}
	est := time.FixedZone("EST", -5*60*60)

	// 20:00 EST on June 1 and 01:00 UTC on June 3 are consecutive UTC days.
	Advance(s, "login", time.Date(2025, 6, 1, 20, 0, 0, 0, est)) // June 2 UTC
	Advance(s, "login", time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC))

	if s.CurrentStreak != 2 {
		t.Errorf("current=%d, want 2 (UTC-normalized consecutive days)", s.CurrentStreak)
	}
}

func TestIsBroken(t *testing.T) {
	if IsBroken(day(1), day(2)) {
		t.Error("one-day gap is not broken")
	}
	if !IsBroken(day(1), day(3)) {
		t.Error("two-day gap is broken")
	}
	if IsBroken(day(1), day(1)) {
		t.Error("same day is not broken")
	}
}
