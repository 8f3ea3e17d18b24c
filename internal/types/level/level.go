package level

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Level struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	Level          int        `json:"level" db:"level"`
	XP             int        `json:"xp" db:"xp"`
	LastActivityAt *time.Time `json:"last_activity_at" db:"last_activity_at"`
	LastDecayDate  *time.Time `json:"last_decay_date,omitempty" db:"last_decay_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// UpdateResult is returned from an XP-granting update.
type UpdateResult struct {
	NewLevel  int    `json:"new_level"`
	NewXP     int    `json:"new_xp"`
	XPGained  int    `json:"xp_gained"`
	LeveledUp bool   `json:"leveled_up"`
	Title     string `json:"title"`
}

// XPForNextLevel returns the XP needed to clear the given level:
// floor(50 * level^1.15). Strictly increasing, so the level-up loop in
// ApplyXP always terminates.
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(50 * math.Pow(float64(level), 1.15)))
}

// ApplyXP adds gained XP to a record, rolling over levels while the total
// clears the threshold. A single large grant can jump several levels;
// leftover XP carries into the new level.
func ApplyXP(l *Level, gained int) (leveledUp bool) {
	if l.Level < 1 {
		l.Level = 1
	}

	total := l.XP + gained
	for total >= XPForNextLevel(l.Level) {
		total -= XPForNextLevel(l.Level)
		l.Level++
		leveledUp = true
	}
	l.XP = total
	return leveledUp
}

// DecayXP applies the weekly-inactivity penalty: drop 5% of in-level XP
// without touching the level. Level is the floor a user never falls below.
func DecayXP(l *Level) {
	l.XP = int(math.Floor(float64(l.XP) * 0.95))
}

type rank struct {
	minLevel int
	title    string
}

// Ordered descending so the first match wins.
var ranks = []rank{
	{50, "Transcendent"},
	{40, "Luminary"},
	{30, "Sage"},
	{20, "Pathfinder"},
	{15, "Voyager"},
	{10, "Trailblazer"},
	{5, "Explorer"},
	{2, "Wanderer"},
	{1, "Newcomer"},
}

// TitleForLevel maps a level to its rank title. Total for every level >= 1
// and non-decreasing in prestige as level grows.
func TitleForLevel(level int) string {
	for _, r := range ranks {
		if level >= r.minLevel {
			return r.title
		}
	}
	return "Newcomer"
}
