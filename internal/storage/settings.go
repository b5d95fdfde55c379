package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

// GetSettings returns a user's notification preferences, falling back to the
// defaults when the user has never saved any.
func (r *Repository) GetSettings(ctx context.Context, userID string) (core.Settings, error) {
	var s core.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, email_notifications, push_notifications, reminder_days, updated_at
		FROM settings WHERE user_id = ?`, userID).
		Scan(&s.UserID, &s.EmailNotifications, &s.PushNotifications, &s.ReminderDays, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultSettings(userID), nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *Repository) SaveSettings(ctx context.Context, s core.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, email_notifications, push_notifications, reminder_days, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			email_notifications = excluded.email_notifications,
			push_notifications = excluded.push_notifications,
			reminder_days = excluded.reminder_days,
			updated_at = excluded.updated_at`,
		s.UserID, s.EmailNotifications, s.PushNotifications, s.ReminderDays, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
