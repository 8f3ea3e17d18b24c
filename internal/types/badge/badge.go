package badge

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryLoginStreak Category = "login_streak"
	CategoryAddiction   Category = "addiction"
)

// Badge is a static catalog entry: unlocked the first time a streak in its
// category meets or exceeds RequirementValue.
type Badge struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Description      string     `json:"description" db:"description"`
	Icon             string     `json:"icon" db:"icon"`
	Category         Category   `json:"category" db:"category"`
	RequirementValue int        `json:"requirement_value" db:"requirement_value"`
	AddictionTypeID  *uuid.UUID `json:"addiction_type_id,omitempty" db:"addiction_type_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

type UserBadge struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	BadgeID  uuid.UUID `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

type BadgeWithStatus struct {
	Badge
	Unlocked bool       `json:"unlocked"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// Eligible returns catalog badges whose requirement is met by currentValue
// and which the user does not already hold. A value jumping several
// thresholds at once returns every crossed badge, not just the highest.
func Eligible(catalog []Badge, granted map[uuid.UUID]bool, currentValue int) []Badge {
	var out []Badge
	for _, b := range catalog {
		if b.RequirementValue > currentValue {
			continue
		}
		if granted[b.ID] {
			continue
		}
		out = append(out, b)
	}
	return out
}
