package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const notificationColumns = `id, user_id, type, title, message, read, dispatched, created_at`

func (r *Repository) CreateNotification(ctx context.Context, n core.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Read, n.Dispatched, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// GetNotification looks a notification up by ID alone: the dispatch worker
// has no user scope when it consumes a queue message.
func (r *Repository) GetNotification(ctx context.Context, id string) (core.Notification, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	return scanNotification(row)
}

func (r *Repository) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]core.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []core.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *Repository) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return requireRow(res)
}

// MarkAllNotificationsRead reports how many rows it flipped; zero is not an
// error here, unlike the single-row variant.
func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *Repository) MarkNotificationDispatched(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET dispatched = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark notification dispatched: %w", err)
	}
	return requireRow(res)
}

func scanNotification(row rowScanner) (core.Notification, error) {
	var n core.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read,
		&n.Dispatched, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Notification{}, ErrNotFound
	}
	if err != nil {
		return core.Notification{}, fmt.Errorf("scan notification: %w", err)
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return n, nil
}
