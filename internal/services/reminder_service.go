package services

import (
	"context"
	"fmt"
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/log"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// ReminderService scans active debts and raises payment_due reminders for
// upcoming EMIs. Scheduling lives in the API binary's cron.
type ReminderService struct {
	storage       *storage.Repository
	notifications *NotificationService
	windowDays    int
	logger        *log.Logger
}

func NewReminderService(storage *storage.Repository, notifications *NotificationService, windowDays int, logger *log.Logger) *ReminderService {
	return &ReminderService{
		storage:       storage,
		notifications: notifications,
		windowDays:    windowDays,
		logger:        logger.WithComponent(log.ComponentReminder),
	}
}

// Scan raises one payment_due notification per active debt whose next
// payment falls inside the user's reminder window. Users who narrowed their
// window in settings are skipped for debts outside it.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, s.windowDays)
	due, err := s.storage.ListActiveDebtsDueBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list due debts: %w", err)
	}

	raised := 0
	for _, d := range due {
		settings, err := s.storage.GetSettings(ctx, d.UserID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to load settings for reminder",
				log.FieldUserID, d.UserID, log.FieldError, err)
			continue
		}
		userCutoff := now.AddDate(0, 0, settings.ReminderDays)
		if d.NextPaymentDate.After(userCutoff) {
			continue
		}

		days := int(d.NextPaymentDate.Sub(now).Hours() / 24)
		message := fmt.Sprintf("EMI of %.2f for %s is due on %s",
			d.EMI, d.Name, d.NextPaymentDate.Format("02 Jan 2006"))
		if days <= 0 {
			message = fmt.Sprintf("EMI of %.2f for %s is due today", d.EMI, d.Name)
		}

		if _, err := s.notifications.Notify(ctx, d.UserID, core.NotifyPaymentDue,
			fmt.Sprintf("Payment due: %s", d.Name), message); err != nil {
			s.logger.ErrorContext(ctx, "Failed to raise payment reminder",
				log.FieldDebtID, d.ID, log.FieldError, err)
			continue
		}
		raised++
	}

	s.logger.InfoContext(ctx, "Reminder scan completed",
		"due_debts", len(due), "reminders_raised", raised)
	return raised, nil
}
