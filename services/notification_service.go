package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/notification"
)

type NotificationService struct {
	db         *pgxpool.Pool
	dispatcher *NotificationDispatcher
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	service := &NotificationService{db: db}
	service.dispatcher = NewNotificationDispatcher(service)
	return service
}

// SetPushProvider injects the real FCM provider from main.go.
func (s *NotificationService) SetPushProvider(provider PushNotificationProvider) {
	s.dispatcher.SetPushProvider(provider)
}

func (s *NotificationService) Stop() {
	s.dispatcher.Stop()
}

// Notify is the fire-and-forget celebration sink used by the progression
// engine. Failures are logged; the grant or level-up that triggered them
// already happened and stays.
func (s *NotificationService) Notify(ctx context.Context, req *notification.CreateNotificationRequest) {
	if _, err := s.CreateNotification(ctx, req); err != nil {
		log.Printf("NotificationService: failed to create %s notification for user %s: %v", req.Type, req.UserID, err)
	}
}

// CreateNotification persists the notification and queues it for push
// delivery.
func (s *NotificationService) CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	dataJSON, err := json.Marshal(req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
	INSERT INTO notifications (id, user_id, type, status, title, body, data, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING id, user_id, type, status, title, body, created_at
	`

	notif := &notification.Notification{Data: req.Data}
	err = s.db.QueryRow(ctx, query,
		uuid.New(), req.UserID, req.Type, notification.StatusPending, req.Title, req.Body, dataJSON,
	).Scan(
		&notif.ID,
		&notif.UserID,
		&notif.Type,
		&notif.Status,
		&notif.Title,
		&notif.Body,
		&notif.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.dispatcher.Enqueue(notif)
	return notif, nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
	SELECT id, user_id, type, status, title, body, data, read_at, sent_at, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifs []*notification.Notification
	for rows.Next() {
		n := &notification.Notification{}
		var dataJSON []byte
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Status,
			&n.Title,
			&n.Body,
			&dataJSON,
			&n.ReadAt,
			&n.SentAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(dataJSON) > 0 {
			_ = json.Unmarshal(dataJSON, &n.Data)
		}
		notifs = append(notifs, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	if notifs == nil {
		notifs = []*notification.Notification{}
	}
	return notifs, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
	SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
	UPDATE notifications SET read_at = NOW() WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `
	UPDATE notifications SET read_at = NOW() WHERE user_id = $1 AND read_at IS NULL
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, req *notification.RegisterDeviceRequest) error {
	if req.Token == "" {
		return fmt.Errorf("device token is required")
	}

	_, err := s.db.Exec(ctx, `
	INSERT INTO device_tokens (id, user_id, token, platform, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (token) DO UPDATE SET user_id = $2, platform = $4
	`, uuid.New(), userID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) getDeviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *NotificationService) markSent(ctx context.Context, notificationID uuid.UUID) {
	_, err := s.db.Exec(ctx, `
	UPDATE notifications SET status = $2, sent_at = NOW() WHERE id = $1
	`, notificationID, notification.StatusSent)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("NotificationService: failed to mark %s as sent: %v", notificationID, err)
	}
}

func (s *NotificationService) markFailed(ctx context.Context, notificationID uuid.UUID, cause error) {
	_, err := s.db.Exec(ctx, `
	UPDATE notifications SET status = $2 WHERE id = $1
	`, notificationID, notification.StatusFailed)
	if err != nil {
		log.Printf("NotificationService: failed to mark %s as failed (cause: %v): %v", notificationID, cause, err)
	}
}
