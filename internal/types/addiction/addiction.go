package addiction

import (
	"time"

	"github.com/google/uuid"

	"journeysAPI/internal/types/streak"
)

// Type is a catalog entry for something a user can track abstinence from.
type Type struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Tracked is one user's tracked addiction plus its abstinence streak.
type Tracked struct {
	Type
	TrackedSince    time.Time            `json:"tracked_since"`
	AbstinenceDays  int                  `json:"abstinence_days"`
	LongestRun      int                  `json:"longest_run"`
	StreakStartDate *time.Time           `json:"streak_start_date,omitempty"`
	Streak          *streak.UpdateResult `json:"streak,omitempty"`
}
