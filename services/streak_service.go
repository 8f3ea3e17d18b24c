package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/streak"
	"journeysAPI/utils"
)

// StreakService maintains consecutive-day counters. The login streak is the
// row keyed by the zero UUID; abstinence streaks are keyed per
// (user, addiction type).
type StreakService struct {
	db *pgxpool.Pool
}

func NewStreakService(db *pgxpool.Pool) *StreakService {
	return &StreakService{db: db}
}

// streakKey maps the optional addiction type to the stored key column.
// The login streak is stored under uuid.Nil rather than NULL: the unique
// constraint on (user_id, addiction_type_id) is the ON CONFLICT arbiter in
// Update, and NULLs never conflict with each other under Postgres's default
// unique semantics, which would let every login ping insert a fresh row.
// A non-null sentinel keeps the key total and the constraint airtight.
func streakKey(addictionTypeID *uuid.UUID) uuid.UUID {
	if addictionTypeID == nil {
		return uuid.Nil
	}
	return *addictionTypeID
}

// Update credits one qualifying activity for today and returns the
// resulting counters. Nothing is mutated in the store unless the write
// succeeds; on a write race the other writer's values are returned.
func (s *StreakService) Update(ctx context.Context, userID uuid.UUID, addictionTypeID *uuid.UUID, activityType activity.Type, today time.Time) (*streak.UpdateResult, error) {
	today = utils.CalendarDate(today)

	// Fast path for a brand-new record: first qualifying activity starts a
	// streak of 1. ON CONFLICT keeps concurrent first activities from
	// racing; the loser falls through to the read-modify-write below.
	insertQuery := `
	INSERT INTO streaks (id, user_id, addiction_type_id, current_streak, longest_streak,
	                     last_activity_date, last_activity_type, streak_start_date, created_at, updated_at)
	VALUES ($1, $2, $3, 1, 1, $4, $5, $4, NOW(), NOW())
	ON CONFLICT (user_id, addiction_type_id) DO NOTHING
	RETURNING id
	`
	var insertedID uuid.UUID
	err := s.db.QueryRow(ctx, insertQuery, uuid.New(), userID, streakKey(addictionTypeID), today, activityType).Scan(&insertedID)
	if err == nil {
		return &streak.UpdateResult{
			CurrentStreak:        1,
			LongestStreak:        1,
			StreakStartDate:      today,
			IsNewStreakIncrement: true,
		}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to create streak: %w", err)
	}

	rec, err := s.get(ctx, userID, addictionTypeID)
	if err != nil {
		return nil, err
	}

	prevActivityDate := rec.LastActivityDate
	incremented := streak.Advance(rec, string(activityType), today)
	if !incremented && rec.CurrentStreak > 0 {
		// Already credited today, nothing to persist.
		return resultFrom(rec, false), nil
	}

	// Conditional update keyed on the date we read. Zero rows affected
	// means a concurrent caller got there first; converge on their write.
	updateQuery := `
	UPDATE streaks
	SET current_streak = $2, longest_streak = $3, last_activity_date = $4,
	    last_activity_type = $5, streak_start_date = $6, updated_at = NOW()
	WHERE id = $1 AND last_activity_date IS NOT DISTINCT FROM $7
	`
	tag, err := s.db.Exec(ctx, updateQuery,
		rec.ID, rec.CurrentStreak, rec.LongestStreak, rec.LastActivityDate,
		rec.LastActivityType, rec.StreakStartDate, prevActivityDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	if tag.RowsAffected() == 0 {
		log.Printf("StreakService: concurrent update for user %s, re-reading", userID)
		current, err := s.get(ctx, userID, addictionTypeID)
		if err != nil {
			return nil, err
		}
		return resultFrom(current, false), nil
	}

	return resultFrom(rec, incremented), nil
}

// Get returns the current streak record, or a zeroed result if the user has
// never had a qualifying activity.
func (s *StreakService) Get(ctx context.Context, userID uuid.UUID, addictionTypeID *uuid.UUID) (*streak.Streak, error) {
	rec, err := s.get(ctx, userID, addictionTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &streak.Streak{UserID: userID, AddictionTypeID: addictionTypeID}, nil
		}
		return nil, err
	}
	return rec, nil
}

// Reset is the explicit user action on an abstinence streak: the current
// run goes to zero and a new one starts today. Longest is history and
// stays.
func (s *StreakService) Reset(ctx context.Context, userID uuid.UUID, addictionTypeID uuid.UUID) error {
	today := utils.CalendarDate(time.Now())

	query := `
	UPDATE streaks
	SET current_streak = 0, streak_start_date = $3, updated_at = NOW()
	WHERE user_id = $1 AND addiction_type_id = $2
	`
	tag, err := s.db.Exec(ctx, query, userID, addictionTypeID, today)
	if err != nil {
		return fmt.Errorf("failed to reset streak: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no streak tracked for addiction %s", addictionTypeID)
	}
	return nil
}

// SweepBroken zeroes every streak whose gap exceeded the allowed single
// missed day. It runs nightly from the scheduler and is idempotent: rows
// already at zero don't match. The lazy check in Update stays the source of
// truth for users who come back; the sweep only catches those who don't.
func (s *StreakService) SweepBroken(ctx context.Context, today time.Time) (int64, error) {
	cutoff := utils.CalendarDate(today).AddDate(0, 0, -streak.MaxGapDays)

	query := `
	UPDATE streaks
	SET current_streak = 0, updated_at = NOW()
	WHERE current_streak > 0 AND last_activity_date < $1
	`
	tag, err := s.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep broken streaks: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *StreakService) get(ctx context.Context, userID uuid.UUID, addictionTypeID *uuid.UUID) (*streak.Streak, error) {
	query := `
	SELECT id, user_id, addiction_type_id, current_streak, longest_streak,
	       last_activity_date, last_activity_type, streak_start_date, created_at, updated_at
	FROM streaks
	WHERE user_id = $1 AND addiction_type_id = $2
	`
	rec := &streak.Streak{}
	var key uuid.UUID
	err := s.db.QueryRow(ctx, query, userID, streakKey(addictionTypeID)).Scan(
		&rec.ID,
		&rec.UserID,
		&key,
		&rec.CurrentStreak,
		&rec.LongestStreak,
		&rec.LastActivityDate,
		&rec.LastActivityType,
		&rec.StreakStartDate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	if key != uuid.Nil {
		rec.AddictionTypeID = &key
	}
	return rec, nil
}

func resultFrom(rec *streak.Streak, incremented bool) *streak.UpdateResult {
	res := &streak.UpdateResult{
		CurrentStreak:        rec.CurrentStreak,
		LongestStreak:        rec.LongestStreak,
		IsNewStreakIncrement: incremented,
	}
	if rec.StreakStartDate != nil {
		res.StreakStartDate = *rec.StreakStartDate
	}
	return res
}
