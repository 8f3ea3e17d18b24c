package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/badge"
	"journeysAPI/internal/types/level"
	"journeysAPI/internal/types/notification"
	"journeysAPI/internal/types/streak"
)

// GemsPerLevel is the cosmetic currency credited on every level-up.
const GemsPerLevel = 25

type streakUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, addictionTypeID *uuid.UUID, activityType activity.Type, today time.Time) (*streak.UpdateResult, error)
}

type xpUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, activityType activity.Type) (*level.UpdateResult, error)
}

type badgeChecker interface {
	CheckAndGrant(ctx context.Context, userID uuid.UUID, category badge.Category, addictionTypeID *uuid.UUID, currentValue int) ([]badge.Badge, error)
}

type gemCrediter interface {
	CreditGems(ctx context.Context, userID uuid.UUID, amount int) error
}

// ActivityService runs the progression pipeline for one qualifying event:
// streak first, then XP, then badges against the fresh streak value. The
// streak is the primary counter; XP/badge/gem failures degrade to logs so
// they never take the user's action down with them.
type ActivityService struct {
	streaks  streakUpdater
	levels   xpUpdater
	badges   badgeChecker
	gems     gemCrediter
	notifier CelebrationNotifier
}

func NewActivityService(streaks streakUpdater, levels xpUpdater, badges badgeChecker, gems gemCrediter) *ActivityService {
	return &ActivityService{
		streaks: streaks,
		levels:  levels,
		badges:  badges,
		gems:    gems,
	}
}

// SetNotifier injects the celebration sink from main.go.
func (s *ActivityService) SetNotifier(n CelebrationNotifier) {
	s.notifier = n
}

// Record consumes one activity event. addictionTypeID is nil for everything
// except addiction check-ins, which feed that addiction's abstinence streak
// and its own badge category.
func (s *ActivityService) Record(ctx context.Context, userID uuid.UUID, activityType activity.Type, addictionTypeID *uuid.UUID) (*activity.Result, error) {
	if !activity.Valid(activityType) {
		return nil, fmt.Errorf("unknown activity type %q", activityType)
	}

	streakRes, err := s.streaks.Update(ctx, userID, addictionTypeID, activityType, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	result := &activity.Result{
		ActivityType: activityType,
		Streak:       streakRes,
	}

	levelRes, err := s.levels.Update(ctx, userID, activityType)
	if err != nil {
		// Streak already landed; XP retries on the next activity.
		log.Printf("ActivityService: level update failed for user %s: %v", userID, err)
	} else {
		result.Level = levelRes
		if levelRes.LeveledUp {
			s.handleLevelUp(ctx, userID, levelRes, result)
		}
	}

	category := badge.CategoryLoginStreak
	if activityType == activity.TypeAddiction {
		category = badge.CategoryAddiction
	}

	newBadges, err := s.badges.CheckAndGrant(ctx, userID, category, addictionTypeID, streakRes.CurrentStreak)
	if err != nil {
		log.Printf("ActivityService: badge check failed for user %s: %v", userID, err)
	} else {
		result.NewBadges = newBadges
	}

	return result, nil
}

func (s *ActivityService) handleLevelUp(ctx context.Context, userID uuid.UUID, levelRes *level.UpdateResult, result *activity.Result) {
	if s.gems != nil {
		if err := s.gems.CreditGems(ctx, userID, GemsPerLevel); err != nil {
			log.Printf("ActivityService: gem credit failed for user %s: %v", userID, err)
		} else {
			result.GemsAwarded = GemsPerLevel
		}
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, &notification.CreateNotificationRequest{
			UserID: userID,
			Type:   notification.TypeLevelUp,
			Title:  "Level up!",
			Body:   fmt.Sprintf("You reached level %d: %s", levelRes.NewLevel, levelRes.Title),
			Data:   map[string]any{"level": levelRes.NewLevel, "title": levelRes.Title},
		})
	}
}
