package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBadgeEarned     Type = "badge_earned"
	TypeLevelUp         Type = "level_up"
	TypeStreakMilestone Type = "streak_milestone"
	TypeStreakAtRisk    Type = "streak_at_risk"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

type Notification struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Type      Type           `json:"type" db:"type"`
	Status    Status         `json:"status" db:"status"`
	Title     string         `json:"title" db:"title"`
	Body      string         `json:"body" db:"body"`
	Data      map[string]any `json:"data,omitempty" db:"data"`
	ReadAt    *time.Time     `json:"read_at,omitempty" db:"read_at"`
	SentAt    *time.Time     `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

type CreateNotificationRequest struct {
	UserID uuid.UUID      `json:"user_id"`
	Type   Type           `json:"type"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Data   map[string]any `json:"data,omitempty"`
}

type DeviceToken struct {
	Token    string `json:"token" db:"token"`
	Platform string `json:"platform" db:"platform"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
