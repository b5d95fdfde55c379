package core

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotifyPaymentDue      NotificationType = "payment_due"
	NotifyPaymentReminder NotificationType = "payment_reminder"
	NotifyGoalMilestone   NotificationType = "goal_milestone"
	NotifyExpenseAlert    NotificationType = "expense_alert"
	NotifyIncomeReceived  NotificationType = "income_received"
	NotifySystem          NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyPaymentDue, NotifyPaymentReminder, NotifyGoalMilestone,
		NotifyExpenseAlert, NotifyIncomeReceived, NotifySystem:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Phone        string
	Currency     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Notification struct {
	ID         string
	UserID     string
	Type       NotificationType
	Title      string
	Message    string
	Read       bool
	Dispatched bool
	CreatedAt  time.Time
}

// Settings are per-user notification preferences. ReminderDays controls how
// far ahead of a due date the payment reminder fires.
type Settings struct {
	UserID             string
	EmailNotifications bool
	PushNotifications  bool
	ReminderDays       int
	UpdatedAt          time.Time
}

func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:             userID,
		EmailNotifications: true,
		PushNotifications:  true,
		ReminderDays:       3,
	}
}

func (u User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func (n Notification) Validate() error {
	if !n.Type.Valid() {
		return ErrInvalidNotificationType
	}
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
