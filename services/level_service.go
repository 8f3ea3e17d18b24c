package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/level"
)

// LevelService converts activity into XP and levels. Updates for one user
// are serialized with a row lock so two tabs firing at once can't lose an
// increment.
type LevelService struct {
	db *pgxpool.Pool
}

func NewLevelService(db *pgxpool.Pool) *LevelService {
	return &LevelService{db: db}
}

// Update grants the XP reward for activityType and rolls levels over as
// needed. An activity type missing from the reward table is a caller bug
// and fails loudly.
func (s *LevelService) Update(ctx context.Context, userID uuid.UUID, activityType activity.Type) (*level.UpdateResult, error) {
	xpGained, err := activity.XPReward(activityType)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
	INSERT INTO levels (id, user_id, level, xp, created_at, updated_at)
	VALUES ($1, $2, 1, 0, NOW(), NOW())
	ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to init level record: %w", err)
	}

	// FOR UPDATE serializes concurrent read-modify-write on this user.
	rec := &level.Level{}
	err = tx.QueryRow(ctx, `
	SELECT id, user_id, level, xp, last_activity_at, last_decay_date
	FROM levels
	WHERE user_id = $1
	FOR UPDATE
	`, userID).Scan(&rec.ID, &rec.UserID, &rec.Level, &rec.XP, &rec.LastActivityAt, &rec.LastDecayDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get level record: %w", err)
	}

	leveledUp := level.ApplyXP(rec, xpGained)

	_, err = tx.Exec(ctx, `
	UPDATE levels
	SET level = $2, xp = $3, last_activity_at = NOW(), updated_at = NOW()
	WHERE id = $1
	`, rec.ID, rec.Level, rec.XP)
	if err != nil {
		return nil, fmt.Errorf("failed to update level record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit level update: %w", err)
	}

	return &level.UpdateResult{
		NewLevel:  rec.Level,
		NewXP:     rec.XP,
		XPGained:  xpGained,
		LeveledUp: leveledUp,
		Title:     level.TitleForLevel(rec.Level),
	}, nil
}

// Get returns the user's level record, defaulting to a fresh level 1 for
// users with no activity yet.
func (s *LevelService) Get(ctx context.Context, userID uuid.UUID) (*level.Level, error) {
	rec := &level.Level{}
	err := s.db.QueryRow(ctx, `
	SELECT id, user_id, level, xp, last_activity_at, last_decay_date
	FROM levels
	WHERE user_id = $1
	`, userID).Scan(&rec.ID, &rec.UserID, &rec.Level, &rec.XP, &rec.LastActivityAt, &rec.LastDecayDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &level.Level{UserID: userID, Level: 1, XP: 0}, nil
		}
		return nil, fmt.Errorf("failed to get level record: %w", err)
	}
	return rec, nil
}

// ApplyIdleDecay docks 5% of in-level XP from users idle for more than a
// week. last_decay_date makes it safe against a double-firing scheduler:
// at most one decay per calendar day.
func (s *LevelService) ApplyIdleDecay(ctx context.Context) (int64, error) {
	query := `
	UPDATE levels
	SET xp = FLOOR(xp * 0.95), last_decay_date = CURRENT_DATE, updated_at = NOW()
	WHERE xp > 0
	  AND last_activity_at < NOW() - INTERVAL '168 hours'
	  AND (last_decay_date IS NULL OR last_decay_date < CURRENT_DATE)
	`
	tag, err := s.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to apply idle decay: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		log.Printf("LevelService: idle decay applied to %d users", n)
	}
	return tag.RowsAffected(), nil
}
