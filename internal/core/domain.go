package core

import (
	"errors"
	"strings"
	"time"
)

const (
	DebtActive    DebtStatus = "active"
	DebtCompleted DebtStatus = "completed"

	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"

	PaymentCompleted PaymentStatus = "completed"
)

type (
	DebtStatus    string
	GoalStatus    string
	PaymentStatus string

	// Debt is a loan tracked by the user. EMI is derived from principal,
	// rate and tenure and must be recomputed whenever any of them change.
	Debt struct {
		ID              string
		UserID          string
		Name            string
		Creditor        string
		DebtType        string
		Principal       float64
		InterestRate    float64 // annual, percent
		TenureMonths    int
		EMI             float64
		Remaining       float64
		TotalPaid       float64
		Status          DebtStatus
		StartDate       time.Time
		NextPaymentDate time.Time
		Notes           string
	}

	Income struct {
		ID         string
		UserID     string
		Title      string
		IncomeType string
		Amount     float64
		Source     string
		Frequency  string
		Date       time.Time
		Notes      string
	}

	Expense struct {
		ID          string
		UserID      string
		Title       string
		Category    string
		Amount      float64
		Date        time.Time
		Description string
		ReceiptURL  string
		Tags        []string
	}

	Goal struct {
		ID         string
		UserID     string
		Title      string
		GoalType   string
		Target     float64
		Current    float64
		TargetDate time.Time
		Priority   string
		Progress   float64 // percent, derived
		Status     GoalStatus
	}

	Payment struct {
		ID            string
		UserID        string
		DebtID        string
		Amount        float64
		Method        string
		Date          time.Time
		Status        PaymentStatus
		ReferenceNo   string
		TransactionID string
		Notes         string
	}

	Budget struct {
		ID             string
		UserID         string
		Category       string
		MonthlyLimit   float64
		AlertThreshold float64 // percent
		Active         bool
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTenure    = errors.New("tenure must be positive")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyCategory    = errors.New("empty category")
	ErrGoalNotActive    = errors.New("goal is not active")
	ErrPaymentTooLarge  = errors.New("payment exceeds remaining debt")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
	ErrInvalidTag       = errors.New("tags must not contain commas")

	ErrInvalidEmail            = errors.New("invalid email address")
	ErrInvalidNotificationType = errors.New("unknown notification type")
)

func (s DebtStatus) Valid() bool {
	return s == DebtActive || s == DebtCompleted
}

func (s GoalStatus) Valid() bool {
	return s == GoalActive || s == GoalCompleted
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyTitle
	}
	if d.Principal <= 0 {
		return ErrInvalidAmount
	}
	if d.InterestRate < 0 {
		return ErrInvalidAmount
	}
	if d.TenureMonths <= 0 {
		return ErrInvalidTenure
	}
	if d.StartDate.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if i.Amount <= 0 {
		return ErrInvalidAmount
	}
	if i.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	// Tags are stored comma-joined, so a comma inside a tag would split it
	// on the way back out.
	for _, tag := range e.Tags {
		if strings.Contains(tag, ",") {
			return ErrInvalidTag
		}
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.Target < 0 || g.Current < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.MonthlyLimit < 0 {
		return ErrInvalidAmount
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

// OccurredOn implementations let the month-window reducer treat income,
// expenses and payments uniformly.

func (i Income) OccurredOn() time.Time  { return i.Date }
func (e Expense) OccurredOn() time.Time { return e.Date }
func (p Payment) OccurredOn() time.Time { return p.Date }
