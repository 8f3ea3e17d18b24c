package activity

import (
	"journeysAPI/internal/types/badge"
	"journeysAPI/internal/types/level"
	"journeysAPI/internal/types/streak"
)

// Result bundles everything one recorded activity changed.
type Result struct {
	ActivityType Type                 `json:"activity_type"`
	Streak       *streak.UpdateResult `json:"streak"`
	Level        *level.UpdateResult  `json:"level,omitempty"`
	NewBadges    []badge.Badge        `json:"new_badges,omitempty"`
	GemsAwarded  int                  `json:"gems_awarded,omitempty"`
}
