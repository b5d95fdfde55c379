package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

type IncomeService struct {
	storage       *storage.Repository
	notifications *NotificationService
}

func NewIncomeService(storage *storage.Repository, notifications *NotificationService) *IncomeService {
	return &IncomeService{
		storage:       storage,
		notifications: notifications,
	}
}

// MonthlyIncomeStats summarizes one calendar month of income.
type MonthlyIncomeStats struct {
	Month       time.Time          `json:"month"`
	Total       float64            `json:"total"`
	RecordCount int                `json:"record_count"`
	ByType      map[string]float64 `json:"by_type"`
}

func (s *IncomeService) Create(ctx context.Context, in core.Income) (core.Income, error) {
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	in.ID = uuid.NewString()

	if err := s.storage.CreateIncome(ctx, in); err != nil {
		return core.Income{}, err
	}

	if _, err := s.notifications.Notify(ctx, in.UserID, core.NotifyIncomeReceived,
		"Income recorded",
		fmt.Sprintf("%s: %.2f received", in.Title, in.Amount)); err != nil {
		slog.ErrorContext(ctx, "Failed to raise income notification",
			"user_id", in.UserID, "error", err)
	}

	return in, nil
}

func (s *IncomeService) Update(ctx context.Context, userID, id string, in core.Income) (core.Income, error) {
	existing, err := s.storage.GetIncome(ctx, userID, id)
	if err != nil {
		return core.Income{}, err
	}
	in.ID = existing.ID
	in.UserID = userID
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	if err := s.storage.UpdateIncome(ctx, in); err != nil {
		return core.Income{}, err
	}
	return in, nil
}

func (s *IncomeService) Get(ctx context.Context, userID, id string) (core.Income, error) {
	return s.storage.GetIncome(ctx, userID, id)
}

func (s *IncomeService) List(ctx context.Context, userID string) ([]core.Income, error) {
	return s.storage.ListIncome(ctx, userID)
}

func (s *IncomeService) Delete(ctx context.Context, userID, id string) error {
	return s.storage.DeleteIncome(ctx, userID, id)
}

// MonthlyStats reduces the user's income to the month containing ref.
func (s *IncomeService) MonthlyStats(ctx context.Context, userID string, ref time.Time) (MonthlyIncomeStats, error) {
	records, err := s.storage.ListIncome(ctx, userID)
	if err != nil {
		return MonthlyIncomeStats{}, err
	}

	monthStart, _ := core.MonthWindow(ref)
	inMonth := core.FilterToMonth(records, ref)
	return MonthlyIncomeStats{
		Month:       monthStart,
		Total:       core.SumAmounts(inMonth, func(i core.Income) float64 { return i.Amount }),
		RecordCount: len(inMonth),
		ByType: core.GroupSum(inMonth,
			func(i core.Income) string { return i.IncomeType },
			func(i core.Income) float64 { return i.Amount }),
	}, nil
}
