package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/badge"
	"journeysAPI/internal/types/notification"
)

// CelebrationNotifier pushes a user-facing celebration. Grant flow treats
// it as fire-and-forget: a notification failure never rolls back a grant.
type CelebrationNotifier interface {
	Notify(ctx context.Context, req *notification.CreateNotificationRequest)
}

// BadgeService grants catalog badges exactly once when a streak crosses
// their threshold.
type BadgeService struct {
	db       *pgxpool.Pool
	notifier CelebrationNotifier
}

func NewBadgeService(db *pgxpool.Pool) *BadgeService {
	return &BadgeService{db: db}
}

// SetNotifier injects the celebration sink from main.go.
func (s *BadgeService) SetNotifier(n CelebrationNotifier) {
	s.notifier = n
}

// CheckAndGrant grants every eligible, not-yet-held badge in the category
// and returns the new grants. The unique constraint on (user_id, badge_id)
// is the real dedup: two concurrent checks can both find a badge eligible,
// only one insert lands, and the loser is treated as success.
func (s *BadgeService) CheckAndGrant(ctx context.Context, userID uuid.UUID, category badge.Category, addictionTypeID *uuid.UUID, currentValue int) ([]badge.Badge, error) {
	catalog, err := s.loadCatalog(ctx, category, addictionTypeID, currentValue)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, nil
	}

	granted, err := s.loadGrantedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newlyGranted []badge.Badge
	for _, b := range badge.Eligible(catalog, granted, currentValue) {
		inserted, err := s.grant(ctx, userID, b.ID)
		if err != nil {
			return newlyGranted, err
		}
		if !inserted {
			// Lost a race against a concurrent grant. Already held, skip.
			continue
		}

		newlyGranted = append(newlyGranted, b)

		if s.notifier != nil {
			s.notifier.Notify(ctx, &notification.CreateNotificationRequest{
				UserID: userID,
				Type:   notification.TypeBadgeEarned,
				Title:  "Badge earned!",
				Body:   fmt.Sprintf("You unlocked %s", b.Name),
				Data:   map[string]any{"badge_id": b.ID.String(), "badge_name": b.Name},
			})
		}
	}

	if len(newlyGranted) > 0 {
		log.Printf("BadgeService: granted %d badge(s) to user %s", len(newlyGranted), userID)
	}
	return newlyGranted, nil
}

// GetBadgesWithStatus returns the whole catalog annotated with the user's
// unlock state, for the badges screen.
func (s *BadgeService) GetBadgesWithStatus(ctx context.Context, userID uuid.UUID) ([]*badge.BadgeWithStatus, error) {
	query := `
	SELECT b.id, b.name, b.description, b.icon, b.category, b.requirement_value,
	       b.addiction_type_id, b.created_at,
	       ub.earned_at IS NOT NULL as unlocked, ub.earned_at
	FROM badges b
	LEFT JOIN user_badges ub ON b.id = ub.badge_id AND ub.user_id = $1
	ORDER BY b.category, b.requirement_value
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badges: %w", err)
	}
	defer rows.Close()

	var badges []*badge.BadgeWithStatus
	for rows.Next() {
		b := &badge.BadgeWithStatus{}
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Icon,
			&b.Category,
			&b.RequirementValue,
			&b.AddictionTypeID,
			&b.CreatedAt,
			&b.Unlocked,
			&b.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating badges: %w", err)
	}
	return badges, nil
}

// CountEarned returns how many badges the user holds.
func (s *BadgeService) CountEarned(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_badges WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count badges: %w", err)
	}
	return count, nil
}

func (s *BadgeService) loadCatalog(ctx context.Context, category badge.Category, addictionTypeID *uuid.UUID, maxValue int) ([]badge.Badge, error) {
	query := `
	SELECT id, name, description, icon, category, requirement_value, addiction_type_id, created_at
	FROM badges
	WHERE category = $1
	  AND requirement_value <= $2
	  AND (addiction_type_id IS NULL OR addiction_type_id IS NOT DISTINCT FROM $3)
	ORDER BY requirement_value
	`
	rows, err := s.db.Query(ctx, query, category, maxValue, addictionTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}
	defer rows.Close()

	var catalog []badge.Badge
	for rows.Next() {
		var b badge.Badge
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Icon,
			&b.Category,
			&b.RequirementValue,
			&b.AddictionTypeID,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		catalog = append(catalog, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating badge catalog: %w", err)
	}
	return catalog, nil
}

func (s *BadgeService) loadGrantedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := s.db.Query(ctx, `SELECT badge_id FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load granted badges: %w", err)
	}
	defer rows.Close()

	granted := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan granted badge: %w", err)
		}
		granted[id] = true
	}
	return granted, rows.Err()
}

// grant inserts the UserBadge row. Returns false when the row already
// existed, which the unique constraint turns from a race into a no-op.
func (s *BadgeService) grant(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, `
	INSERT INTO user_badges (id, user_id, badge_id, earned_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (user_id, badge_id) DO NOTHING
	RETURNING id
	`, uuid.New(), userID, badgeID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to grant badge: %w", err)
	}
	return true, nil
}
