package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// BudgetService owns monthly category budgets and their alerting.
type BudgetService struct {
	storage       *storage.Repository
	notifications *NotificationService
}

func NewBudgetService(storage *storage.Repository, notifications *NotificationService) *BudgetService {
	return &BudgetService{
		storage:       storage,
		notifications: notifications,
	}
}

// BudgetStatus reports a budget's usage for the current month.
type BudgetStatus struct {
	Budget core.Budget      `json:"budget"`
	Month  time.Time        `json:"month"`
	Usage  core.BudgetUsage `json:"usage"`
}

func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if b.AlertThreshold == 0 {
		b.AlertThreshold = 80
	}
	b.ID = uuid.NewString()

	if err := s.storage.CreateBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id string, in core.Budget) (core.Budget, error) {
	b, err := s.storage.GetBudget(ctx, userID, id)
	if err != nil {
		return core.Budget{}, err
	}
	b.Category = in.Category
	b.MonthlyLimit = in.MonthlyLimit
	b.AlertThreshold = in.AlertThreshold
	b.Active = in.Active
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.storage.UpdateBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id string) (core.Budget, error) {
	return s.storage.GetBudget(ctx, userID, id)
}

func (s *BudgetService) List(ctx context.Context, userID string) ([]core.Budget, error) {
	return s.storage.ListBudgets(ctx, userID)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	return s.storage.DeleteBudget(ctx, userID, id)
}

// Status computes current-month usage for one budget.
func (s *BudgetService) Status(ctx context.Context, userID, id string, now time.Time) (BudgetStatus, error) {
	b, err := s.storage.GetBudget(ctx, userID, id)
	if err != nil {
		return BudgetStatus{}, err
	}

	spent, err := s.monthSpend(ctx, userID, b.Category, now)
	if err != nil {
		return BudgetStatus{}, err
	}

	monthStart, _ := core.MonthWindow(now)
	return BudgetStatus{
		Budget: b,
		Month:  monthStart,
		Usage:  core.EvaluateBudget(b.MonthlyLimit, b.AlertThreshold, spent),
	}, nil
}

// CheckAfterExpense re-evaluates the active budget for the expense's
// category and raises an expense_alert notification when usage crosses the
// alert threshold.
func (s *BudgetService) CheckAfterExpense(ctx context.Context, e core.Expense) error {
	b, err := s.storage.GetActiveBudgetByCategory(ctx, e.UserID, e.Category)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	spent, err := s.monthSpend(ctx, e.UserID, e.Category, e.Date)
	if err != nil {
		return err
	}

	usage := core.EvaluateBudget(b.MonthlyLimit, b.AlertThreshold, spent)
	if !usage.AlertTriggered {
		return nil
	}

	_, err = s.notifications.Notify(ctx, e.UserID, core.NotifyExpenseAlert,
		fmt.Sprintf("Budget alert: %s", b.Category),
		fmt.Sprintf("You have used %.0f%% of your %s budget (%.2f of %.2f)",
			usage.PercentUsed, b.Category, spent, b.MonthlyLimit))
	return err
}

func (s *BudgetService) monthSpend(ctx context.Context, userID, category string, ref time.Time) (float64, error) {
	expenses, err := s.storage.ListExpensesByCategory(ctx, userID, category)
	if err != nil {
		return 0, err
	}
	inMonth := core.FilterToMonth(expenses, ref)
	return core.SumAmounts(inMonth, func(e core.Expense) float64 { return e.Amount }), nil
}
