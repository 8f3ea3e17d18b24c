package streak

import (
	"time"

	"github.com/google/uuid"

	"journeysAPI/utils"
)

type Streak struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	AddictionTypeID  *uuid.UUID `json:"addiction_type_id,omitempty" db:"addiction_type_id"`
	CurrentStreak    int        `json:"current_streak" db:"current_streak"`
	LongestStreak    int        `json:"longest_streak" db:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date" db:"last_activity_date"`
	LastActivityType string     `json:"last_activity_type" db:"last_activity_type"`
	StreakStartDate  *time.Time `json:"streak_start_date" db:"streak_start_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// UpdateResult is what callers get back from a streak update.
type UpdateResult struct {
	CurrentStreak        int       `json:"current_streak"`
	LongestStreak        int       `json:"longest_streak"`
	StreakStartDate      time.Time `json:"streak_start_date"`
	IsNewStreakIncrement bool      `json:"is_new_streak_increment"`
}

// MaxGapDays is the largest allowed gap between qualifying days. One missed
// calendar day breaks a streak; the lazy update and the nightly sweep both
// use this threshold so they can never disagree on what "broken" means.
const MaxGapDays = 1

// Advance applies one qualifying activity on the given day and mutates the
// record in place. It returns whether the day counted as a new increment
// (a second activity on the same day is a no-op). Persistence is the
// caller's problem; Advance itself never fails.
func Advance(s *Streak, activityType string, today time.Time) bool {
	today = utils.CalendarDate(today)

	if s.LastActivityDate == nil {
		// First qualifying activity ever.
		s.CurrentStreak = 1
		s.LongestStreak = 1
		s.StreakStartDate = &today
		s.LastActivityDate = &today
		s.LastActivityType = activityType
		return true
	}

	days := utils.DaysBetween(*s.LastActivityDate, today)

	switch {
	case days <= 0:
		// Already credited today.
		return false
	case days == MaxGapDays:
		s.CurrentStreak++
		if s.CurrentStreak > s.LongestStreak {
			s.LongestStreak = s.CurrentStreak
		}
	default:
		// Gap detected: a fresh streak starts today. Longest is untouched.
		s.CurrentStreak = 1
		s.StreakStartDate = &today
		if s.LongestStreak < 1 {
			s.LongestStreak = 1
		}
	}

	s.LastActivityDate = &today
	s.LastActivityType = activityType
	return true
}

// IsBroken reports whether a streak last fed on lastActivity has lapsed as
// of today. Used by the nightly sweep.
func IsBroken(lastActivity, today time.Time) bool {
	return utils.DaysBetween(lastActivity, today) > MaxGapDays
}
