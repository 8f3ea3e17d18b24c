package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"journeysAPI/internal/types/level"
	"journeysAPI/internal/types/streak"
	"journeysAPI/utils"
)

// ProgressionSummary is the single payload the profile and progression
// screens render from.
type ProgressionSummary struct {
	CurrentStreak   int        `json:"current_streak"`
	LongestStreak   int        `json:"longest_streak"`
	StreakStartDate *time.Time `json:"streak_start_date,omitempty"`
	Level           int        `json:"level"`
	Title           string     `json:"title"`
	XP              int        `json:"xp"`
	XPForNextLevel  int        `json:"xp_for_next_level"`
	BadgesEarned    int        `json:"badges_earned"`
	AverageMood     float64    `json:"average_mood"`
	MomentumScore   float64    `json:"momentum_score"`
}

// ProgressionService composes the three calculators into read-side views.
type ProgressionService struct {
	streaks  *StreakService
	levels   *LevelService
	badges   *BadgeService
	journals *JournalService
}

func NewProgressionService(streaks *StreakService, levels *LevelService, badges *BadgeService, journals *JournalService) *ProgressionService {
	return &ProgressionService{
		streaks:  streaks,
		levels:   levels,
		badges:   badges,
		journals: journals,
	}
}

// GetSummary assembles the user's login streak, level and badge state.
// The momentum score is display-only; a failed mood read degrades to 0
// rather than failing the whole summary.
func (s *ProgressionService) GetSummary(ctx context.Context, userID uuid.UUID) (*ProgressionSummary, error) {
	loginStreak, err := s.streaks.Get(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get login streak: %w", err)
	}

	lvl, err := s.levels.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	badgeCount, err := s.badges.CountEarned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count badges: %w", err)
	}

	avgMood, err := s.journals.AverageMood(ctx, userID, 30)
	if err != nil {
		log.Printf("ProgressionService: average mood unavailable for user %s: %v", userID, err)
		avgMood = 0
	}

	return &ProgressionSummary{
		CurrentStreak:   s.effectiveStreak(loginStreak),
		LongestStreak:   loginStreak.LongestStreak,
		StreakStartDate: loginStreak.StreakStartDate,
		Level:           lvl.Level,
		Title:           level.TitleForLevel(lvl.Level),
		XP:              lvl.XP,
		XPForNextLevel:  level.XPForNextLevel(lvl.Level),
		BadgesEarned:    badgeCount,
		AverageMood:     avgMood,
		MomentumScore:   utils.CalculateMomentumScore(s.effectiveStreak(loginStreak), badgeCount, avgMood),
	}, nil
}

// effectiveStreak shows a lapsed streak as zero even before the nightly
// sweep has run, so the read side never flatters a broken streak.
func (s *ProgressionService) effectiveStreak(rec *streak.Streak) int {
	if rec.LastActivityDate == nil {
		return 0
	}
	if streak.IsBroken(*rec.LastActivityDate, time.Now()) {
		return 0
	}
	return rec.CurrentStreak
}
