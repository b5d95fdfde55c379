// Package services provides business logic orchestrating storage, the
// notification queue and outbound delivery.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/amqp"
	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// NotificationService persists notifications and enqueues them for the
// dispatch worker. Publishing is fire-and-forget: a queue outage never fails
// the operation that raised the notification.
type NotificationService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client
}

func NewNotificationService(storage *storage.Repository, amqpClient *amqp.Client) *NotificationService {
	return &NotificationService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Notify records a notification and queues it for delivery.
func (s *NotificationService) Notify(ctx context.Context, userID string, t core.NotificationType, title, message string) (core.Notification, error) {
	n := core.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.Validate(); err != nil {
		return core.Notification{}, err
	}

	if err := s.storage.CreateNotification(ctx, n); err != nil {
		return core.Notification{}, fmt.Errorf("save notification: %w", err)
	}

	if err := s.publish(ctx, n); err != nil {
		slog.ErrorContext(ctx, "Failed to publish notification message",
			"id", n.ID, "error", err)
		// The row is saved; the reminder scan or a later publish can retry.
	}

	return n, nil
}

func (s *NotificationService) publish(ctx context.Context, n core.Notification) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping notification message")
		return nil
	}
	return s.amqpClient.PublishNotification(ctx, n.ID, n.UserID)
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]core.Notification, error) {
	return s.storage.ListNotifications(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.storage.MarkNotificationRead(ctx, userID, id)
}

// MarkAllRead returns the number of notifications flipped to read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.storage.MarkAllNotificationsRead(ctx, userID)
}
