// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

const notificationColumns = `id, user_id, actor_id, source_id, kind, read, created_at`

// NotificationStore handles reply and mention notifications.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore creates a new NotificationStore with the given database connection.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Create inserts a notification. Duplicates are allowed; a user mentioned in
// a reply to their own comment gets one row per reason.
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	created := &models.Notification{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, actor_id, source_id, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING `+notificationColumns+`
	`, n.UserID, n.ActorID, n.SourceID, n.Kind).Scan(
		&created.ID, &created.UserID, &created.ActorID, &created.SourceID,
		&created.Kind, &created.Read, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return created, nil
}

// Notify inserts a notification, discarding the stored copy. It adapts
// Create to the event handlers, which only care about success.
func (s *NotificationStore) Notify(ctx context.Context, n *models.Notification) error {
	_, err := s.Create(ctx, n)
	return err
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var items []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.ActorID, &n.SourceID,
			&n.Kind, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkRead flags a single notification as read, scoped to its owner.
func (s *NotificationStore) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
