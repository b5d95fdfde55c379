package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// ExpenseService owns expense records and raises budget alerts as a side
// effect of spending.
type ExpenseService struct {
	storage *storage.Repository
	budgets *BudgetService
}

func NewExpenseService(storage *storage.Repository, budgets *BudgetService) *ExpenseService {
	return &ExpenseService{
		storage: storage,
		budgets: budgets,
	}
}

// MonthlyExpenseStats summarizes one calendar month of spending.
type MonthlyExpenseStats struct {
	Month       time.Time          `json:"month"`
	Total       float64            `json:"total"`
	RecordCount int                `json:"record_count"`
	ByCategory  map[string]float64 `json:"by_category"`
	TopExpenses []core.Expense     `json:"top_expenses"`
}

// Create saves the expense, then re-checks the category's budget. The alert
// check never fails the create.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()

	if err := s.storage.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, err
	}

	if err := s.budgets.CheckAfterExpense(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Budget alert check failed",
			"user_id", e.UserID, "category", e.Category, "error", err)
	}

	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, userID, id string, e core.Expense) (core.Expense, error) {
	existing, err := s.storage.GetExpense(ctx, userID, id)
	if err != nil {
		return core.Expense{}, err
	}
	e.ID = existing.ID
	e.UserID = userID
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.storage.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id string) (core.Expense, error) {
	return s.storage.GetExpense(ctx, userID, id)
}

func (s *ExpenseService) List(ctx context.Context, userID string) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx, userID)
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	return s.storage.DeleteExpense(ctx, userID, id)
}

// MonthlyStats reduces the user's spending to the month containing ref.
func (s *ExpenseService) MonthlyStats(ctx context.Context, userID string, ref time.Time) (MonthlyExpenseStats, error) {
	records, err := s.storage.ListExpenses(ctx, userID)
	if err != nil {
		return MonthlyExpenseStats{}, err
	}

	monthStart, _ := core.MonthWindow(ref)
	inMonth := core.FilterToMonth(records, ref)
	return MonthlyExpenseStats{
		Month:       monthStart,
		Total:       core.SumAmounts(inMonth, func(e core.Expense) float64 { return e.Amount }),
		RecordCount: len(inMonth),
		ByCategory: core.GroupSum(inMonth,
			func(e core.Expense) string { return e.Category },
			func(e core.Expense) float64 { return e.Amount }),
		TopExpenses: topByAmount(inMonth, 5),
	}, nil
}

func topByAmount(expenses []core.Expense, limit int) []core.Expense {
	sorted := make([]core.Expense, len(expenses))
	copy(sorted, expenses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
