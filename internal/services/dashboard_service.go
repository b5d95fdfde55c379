package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// DashboardService assembles the overview and monthly summary from every
// record type. The five collections load concurrently.
type DashboardService struct {
	storage *storage.Repository
}

func NewDashboardService(storage *storage.Repository) *DashboardService {
	return &DashboardService{storage: storage}
}

func (s *DashboardService) Overview(ctx context.Context, userID string, now time.Time) (core.Overview, error) {
	var (
		debts    []core.Debt
		income   []core.Income
		expenses []core.Expense
		goals    []core.Goal
		payments []core.Payment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { debts, err = s.storage.ListDebts(ctx, userID); return })
	g.Go(func() (err error) { income, err = s.storage.ListIncome(ctx, userID); return })
	g.Go(func() (err error) { expenses, err = s.storage.ListExpenses(ctx, userID); return })
	g.Go(func() (err error) { goals, err = s.storage.ListGoals(ctx, userID); return })
	g.Go(func() (err error) { payments, err = s.storage.ListPayments(ctx, userID); return })
	if err := g.Wait(); err != nil {
		return core.Overview{}, err
	}

	return core.BuildOverview(debts, income, expenses, goals, payments, now), nil
}

func (s *DashboardService) MonthlySummary(ctx context.Context, userID string, ref time.Time) (core.MonthlySummary, error) {
	var (
		income   []core.Income
		expenses []core.Expense
		payments []core.Payment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { income, err = s.storage.ListIncome(ctx, userID); return })
	g.Go(func() (err error) { expenses, err = s.storage.ListExpenses(ctx, userID); return })
	g.Go(func() (err error) { payments, err = s.storage.ListPayments(ctx, userID); return })
	if err := g.Wait(); err != nil {
		return core.MonthlySummary{}, err
	}

	return core.BuildMonthlySummary(income, expenses, payments, ref), nil
}
