package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one journal entry. At most one per user per UTC calendar day;
// saving again the same day overwrites mood and content.
type Entry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Date      time.Time `json:"date" db:"date"`
	MoodScore int       `json:"mood_score" db:"mood_score"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type SaveEntryRequest struct {
	MoodScore int    `json:"moodScore"`
	Content   string `json:"content"`
}

type CalendarDay struct {
	Date      time.Time `json:"date"`
	HasEntry  bool      `json:"has_entry"`
	MoodScore int       `json:"mood_score,omitempty"`
	IsToday   bool      `json:"is_today"`
}

type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []*CalendarDay `json:"days"`
}

// DaysStat summarizes journaled days over a period, plus the average mood.
type DaysStat struct {
	Period        string  `json:"period"`
	DaysJournaled int     `json:"days_journaled"`
	TotalDays     int     `json:"total_days"`
	AverageMood   float64 `json:"average_mood"`
}
