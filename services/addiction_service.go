package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/addiction"
)

// AddictionService handles abstinence tracking. A user starts tracking an
// addiction implicitly with their first check-in; each check-in is one
// abstinent day fed into that addiction's streak.
type AddictionService struct {
	db         *pgxpool.Pool
	activities *ActivityService
	streaks    *StreakService
}

func NewAddictionService(db *pgxpool.Pool, activities *ActivityService, streaks *StreakService) *AddictionService {
	return &AddictionService{db: db, activities: activities, streaks: streaks}
}

// GetCatalog lists every addiction type users can track.
func (s *AddictionService) GetCatalog(ctx context.Context) ([]*addiction.Type, error) {
	query := `
	SELECT id, name, description, icon, created_at
	FROM addiction_types
	ORDER BY name
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch addiction types: %w", err)
	}
	defer rows.Close()

	var types []*addiction.Type
	for rows.Next() {
		t := &addiction.Type{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Icon, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan addiction type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetTracked lists the addictions the user has checked in against, joined
// with their abstinence streaks.
func (s *AddictionService) GetTracked(ctx context.Context, userID uuid.UUID) ([]*addiction.Tracked, error) {
	query := `
	SELECT at.id, at.name, at.description, at.icon, at.created_at,
	       s.created_at, s.current_streak, s.longest_streak, s.streak_start_date
	FROM addiction_types at
	INNER JOIN streaks s ON s.addiction_type_id = at.id AND s.user_id = $1
	ORDER BY at.name
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracked addictions: %w", err)
	}
	defer rows.Close()

	var tracked []*addiction.Tracked
	for rows.Next() {
		t := &addiction.Tracked{}
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.Icon,
			&t.CreatedAt,
			&t.TrackedSince,
			&t.AbstinenceDays,
			&t.LongestRun,
			&t.StreakStartDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracked addiction: %w", err)
		}
		tracked = append(tracked, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked addictions: %w", err)
	}

	if tracked == nil {
		tracked = []*addiction.Tracked{}
	}
	return tracked, nil
}

// CheckIn records one abstinent day against the addiction's streak and runs
// the full progression pipeline (XP, addiction-category badges).
func (s *AddictionService) CheckIn(ctx context.Context, userID uuid.UUID, addictionTypeID uuid.UUID) (*activity.Result, error) {
	if err := s.typeExists(ctx, addictionTypeID); err != nil {
		return nil, err
	}
	return s.activities.Record(ctx, userID, activity.TypeAddiction, &addictionTypeID)
}

// Reset is the user admitting a relapse: the abstinence run restarts today.
func (s *AddictionService) Reset(ctx context.Context, userID uuid.UUID, addictionTypeID uuid.UUID) error {
	if err := s.typeExists(ctx, addictionTypeID); err != nil {
		return err
	}
	return s.streaks.Reset(ctx, userID, addictionTypeID)
}

func (s *AddictionService) typeExists(ctx context.Context, addictionTypeID uuid.UUID) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM addiction_types WHERE id = $1)`, addictionTypeID).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check addiction type: %w", err)
	}
	if !exists {
		return fmt.Errorf("addiction type not found")
	}
	return nil
}
