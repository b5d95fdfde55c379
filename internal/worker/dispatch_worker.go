// Package worker delivers queued notifications over push and email.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/karthikeyanvk18/Clerro/internal/amqp"
	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// DispatchWorker consumes notification messages and fans them out to the
// channels the user has enabled. Each message carries only a row ID; the
// worker reads the current notification state from the database.
type DispatchWorker struct {
	storage *storage.Repository
	pusher  *notify.Pusher
	mailer  *notify.Mailer
}

func NewDispatchWorker(storage *storage.Repository, pusher *notify.Pusher, mailer *notify.Mailer) *DispatchWorker {
	return &DispatchWorker{
		storage: storage,
		pusher:  pusher,
		mailer:  mailer,
	}
}

// HandleMessage processes a single notification message from AMQP.
func (w *DispatchWorker) HandleMessage(ctx context.Context, msg *amqp.NotificationMessage) error {
	slog.InfoContext(ctx, "Processing notification message", "id", msg.ID, "user_id", msg.UserID)

	n, err := w.storage.GetNotification(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get notification from storage: %w", err)
	}
	if n.Dispatched {
		slog.InfoContext(ctx, "Notification already dispatched, skipping", "id", n.ID)
		return nil
	}

	settings, err := w.storage.GetSettings(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("get user settings: %w", err)
	}

	if err := w.deliver(ctx, n, settings); err != nil {
		return err
	}

	if err := w.storage.MarkNotificationDispatched(ctx, n.ID); err != nil {
		return fmt.Errorf("mark dispatched: %w", err)
	}

	slog.InfoContext(ctx, "Notification dispatched", "id", n.ID, "type", n.Type)
	return nil
}

// deliver sends over every enabled channel. Push failures are retryable so
// they propagate; email failures only log, mail is the secondary channel.
func (w *DispatchWorker) deliver(ctx context.Context, n core.Notification, settings core.Settings) error {
	if settings.PushNotifications {
		if err := w.pusher.Send(ctx, n.UserID, n.Title, n.Message, string(n.Type)); err != nil {
			return fmt.Errorf("push notification: %w", err)
		}
	}

	if settings.EmailNotifications {
		user, err := w.storage.GetUser(ctx, n.UserID)
		if err != nil {
			return fmt.Errorf("get user for email: %w", err)
		}
		if err := w.mailer.SendNotification(user.Email, n.Title, n.Message); err != nil {
			slog.ErrorContext(ctx, "Failed to email notification",
				"id", n.ID, "error", err)
		}
	}

	return nil
}
