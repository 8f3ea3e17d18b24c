package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/badge"
	"journeysAPI/internal/types/level"
	"journeysAPI/internal/types/streak"
)

type fakeStreaks struct {
	result *streak.UpdateResult
	err    error
}

func (f *fakeStreaks) Update(ctx context.Context, userID uuid.UUID, addictionTypeID *uuid.UUID, activityType activity.Type, today time.Time) (*streak.UpdateResult, error) {
	return f.result, f.err
}

type fakeLevels struct {
	result *level.UpdateResult
	err    error
}

func (f *fakeLevels) Update(ctx context.Context, userID uuid.UUID, activityType activity.Type) (*level.UpdateResult, error) {
	return f.result, f.err
}

type fakeBadges struct {
	granted      []badge.Badge
	err          error
	lastCategory badge.Category
	lastValue    int
}

func (f *fakeBadges) CheckAndGrant(ctx context.Context, userID uuid.UUID, category badge.Category, addictionTypeID *uuid.UUID, currentValue int) ([]badge.Badge, error) {
	f.lastCategory = category
	f.lastValue = currentValue
	return f.granted, f.err
}

type fakeGems struct {
	credited int
	err      error
}

func (f *fakeGems) CreditGems(ctx context.Context, userID uuid.UUID, amount int) error {
	if f.err != nil {
		return f.err
	}
	f.credited += amount
	return nil
}

func TestRecord_HappyPath(t *testing.T) {
	streaks := &fakeStreaks{result: &streak.UpdateResult{CurrentStreak: 7, LongestStreak: 7, IsNewStreakIncrement: true}}
	levels := &fakeLevels{result: &level.UpdateResult{NewLevel: 2, NewXP: 10, XPGained: 15, LeveledUp: true, Title: "Wanderer"}}
	badges := &fakeBadges{granted: []badge.Badge{{ID: uuid.New(), RequirementValue: 7}}}
	gems := &fakeGems{}

	svc := NewActivityService(streaks, levels, badges, gems)

	res, err := svc.Record(context.Background(), uuid.New(), activity.TypeJournal, nil)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if res.Streak.CurrentStreak != 7 {
		t.Errorf("streak = %d, want 7", res.Streak.CurrentStreak)
	}
	if res.Level == nil || !res.Level.LeveledUp {
		t.Error("expected a level-up in the result")
	}
	if len(res.NewBadges) != 1 {
		t.Errorf("got %d new badges, want 1", len(res.NewBadges))
	}
	if gems.credited != GemsPerLevel {
		t.Errorf("gems credited = %d, want %d", gems.credited, GemsPerLevel)
	}
	if badges.lastValue != 7 {
		t.Errorf("badge check ran with value %d, want the fresh streak 7", badges.lastValue)
	}
}

func TestRecord_StreakFailureIsReturned(t *testing.T) {
	streaks := &fakeStreaks{err: errors.New("store unavailable")}
	svc := NewActivityService(streaks, &fakeLevels{}, &fakeBadges{}, &fakeGems{})

	_, err := svc.Record(context.Background(), uuid.New(), activity.TypeLogin, nil)
	if err == nil {
		t.Fatal("streak store failure must surface to the caller")
	}
}

func TestRecord_LevelFailureDoesNotFailActivity(t *testing.T) {
	streaks := &fakeStreaks{result: &streak.UpdateResult{CurrentStreak: 3, LongestStreak: 5}}
	levels := &fakeLevels{err: errors.New("store unavailable")}
	svc := NewActivityService(streaks, levels, &fakeBadges{}, &fakeGems{})

	res, err := svc.Record(context.Background(), uuid.New(), activity.TypeLogin, nil)
	if err != nil {
		t.Fatalf("level failure must not fail the activity: %v", err)
	}
	if res.Level != nil {
		t.Error("result must carry no level data when the XP update failed")
	}
	if res.Streak.CurrentStreak != 3 {
		t.Errorf("streak result lost: got %d", res.Streak.CurrentStreak)
	}
}

func TestRecord_BadgeFailureDoesNotFailActivity(t *testing.T) {
	streaks := &fakeStreaks{result: &streak.UpdateResult{CurrentStreak: 3, LongestStreak: 5}}
	levels := &fakeLevels{result: &level.UpdateResult{NewLevel: 1, NewXP: 5, XPGained: 5, Title: "Newcomer"}}
	badges := &fakeBadges{err: errors.New("store unavailable")}
	svc := NewActivityService(streaks, levels, badges, &fakeGems{})

	res, err := svc.Record(context.Background(), uuid.New(), activity.TypeLogin, nil)
	if err != nil {
		t.Fatalf("badge failure must not fail the activity: %v", err)
	}
	if len(res.NewBadges) != 0 {
		t.Errorf("got %d badges despite failure", len(res.NewBadges))
	}
}

func TestRecord_AddictionRoutesToAddictionBadges(t *testing.T) {
	streaks := &fakeStreaks{result: &streak.UpdateResult{CurrentStreak: 14, LongestStreak: 14}}
	levels := &fakeLevels{result: &level.UpdateResult{NewLevel: 1, NewXP: 20, XPGained: 20, Title: "Newcomer"}}
	badges := &fakeBadges{}
	svc := NewActivityService(streaks, levels, badges, &fakeGems{})

	addictionID := uuid.New()
	_, err := svc.Record(context.Background(), uuid.New(), activity.TypeAddiction, &addictionID)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if badges.lastCategory != badge.CategoryAddiction {
		t.Errorf("badge category = %s, want %s", badges.lastCategory, badge.CategoryAddiction)
	}
}

func TestRecord_UnknownActivityTypeFails(t *testing.T) {
	svc := NewActivityService(&fakeStreaks{}, &fakeLevels{}, &fakeBadges{}, &fakeGems{})

	_, err := svc.Record(context.Background(), uuid.New(), activity.Type("yoga"), nil)
	if err == nil {
		t.Fatal("unrecognized activity type must fail loudly")
	}
}
