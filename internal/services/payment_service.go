package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// nextPaymentInterval is how far the due date advances after each payment.
const nextPaymentInterval = 30 * 24 * time.Hour

// PaymentService records debt payments and applies their effect on the debt.
type PaymentService struct {
	storage       *storage.Repository
	notifications *NotificationService
	mailer        *notify.Mailer
}

func NewPaymentService(storage *storage.Repository, notifications *NotificationService, mailer *notify.Mailer) *PaymentService {
	return &PaymentService{
		storage:       storage,
		notifications: notifications,
		mailer:        mailer,
	}
}

// MonthlyPaymentStats summarizes one calendar month of payments.
type MonthlyPaymentStats struct {
	Month      time.Time `json:"month"`
	Total      float64   `json:"total"`
	Count      int       `json:"count"`
	Average    float64   `json:"average"`
	TotalCount int       `json:"total_count"`
}

// Record validates and stores a payment, updating the debt in the same
// transaction. Paying the balance down to zero completes the debt.
func (s *PaymentService) Record(ctx context.Context, p core.Payment) (core.Payment, error) {
	if p.Amount <= 0 {
		return core.Payment{}, core.ErrInvalidAmount
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	d, err := s.storage.GetDebt(ctx, p.UserID, p.DebtID)
	if err != nil {
		return core.Payment{}, err
	}
	if p.Amount > d.Remaining {
		return core.Payment{}, core.ErrPaymentTooLarge
	}

	p.ID = uuid.NewString()
	p.TransactionID = uuid.NewString()
	p.Status = core.PaymentCompleted

	d.Remaining -= p.Amount
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	d.TotalPaid += p.Amount
	if d.Remaining == 0 {
		d.Status = core.DebtCompleted
		d.NextPaymentDate = time.Time{}
	} else {
		d.NextPaymentDate = d.NextPaymentDate.Add(nextPaymentInterval)
	}

	if err := s.storage.CreatePaymentAndUpdateDebt(ctx, p, d); err != nil {
		return core.Payment{}, err
	}

	slog.InfoContext(ctx, "Payment recorded",
		"payment_id", p.ID, "debt_id", d.ID, "amount", p.Amount, "remaining", d.Remaining)

	s.confirm(ctx, p, d)
	return p, nil
}

// confirm sends the post-payment notification and email, best-effort.
func (s *PaymentService) confirm(ctx context.Context, p core.Payment, d core.Debt) {
	title := fmt.Sprintf("Payment recorded for %s", d.Name)
	message := fmt.Sprintf("Paid %.2f, remaining balance %.2f", p.Amount, d.Remaining)
	if d.Status == core.DebtCompleted {
		title = fmt.Sprintf("Debt paid off: %s", d.Name)
		message = fmt.Sprintf("Final payment of %.2f cleared this debt. Total paid: %.2f", p.Amount, d.TotalPaid)
	}

	if _, err := s.notifications.Notify(ctx, p.UserID, core.NotifySystem, title, message); err != nil {
		slog.ErrorContext(ctx, "Failed to raise payment notification",
			"payment_id", p.ID, "error", err)
	}

	settings, err := s.storage.GetSettings(ctx, p.UserID)
	if err != nil || !settings.EmailNotifications {
		return
	}
	user, err := s.storage.GetUser(ctx, p.UserID)
	if err != nil {
		return
	}
	if err := s.mailer.SendPaymentConfirmation(user.Email, d.Name, p.Amount, d.Remaining); err != nil {
		slog.ErrorContext(ctx, "Failed to send payment confirmation email",
			"payment_id", p.ID, "error", err)
	}
}

func (s *PaymentService) Get(ctx context.Context, userID, id string) (core.Payment, error) {
	return s.storage.GetPayment(ctx, userID, id)
}

func (s *PaymentService) List(ctx context.Context, userID string) ([]core.Payment, error) {
	return s.storage.ListPayments(ctx, userID)
}

func (s *PaymentService) ListByDebt(ctx context.Context, userID, debtID string) ([]core.Payment, error) {
	if _, err := s.storage.GetDebt(ctx, userID, debtID); err != nil {
		return nil, err
	}
	return s.storage.ListPaymentsByDebt(ctx, userID, debtID)
}

func (s *PaymentService) Delete(ctx context.Context, userID, id string) error {
	return s.storage.DeletePayment(ctx, userID, id)
}

// MonthlyStats reduces the user's payments to the month containing ref.
func (s *PaymentService) MonthlyStats(ctx context.Context, userID string, ref time.Time) (MonthlyPaymentStats, error) {
	payments, err := s.storage.ListPayments(ctx, userID)
	if err != nil {
		return MonthlyPaymentStats{}, err
	}

	monthStart, _ := core.MonthWindow(ref)
	inMonth := core.FilterToMonth(payments, ref)
	total := core.SumAmounts(inMonth, func(p core.Payment) float64 { return p.Amount })

	var average float64
	if len(inMonth) > 0 {
		average = total / float64(len(inMonth))
	}
	return MonthlyPaymentStats{
		Month:      monthStart,
		Total:      total,
		Count:      len(inMonth),
		Average:    average,
		TotalCount: len(payments),
	}, nil
}
