package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// DebtService owns the debt lifecycle. EMI is always derived server-side;
// client-supplied EMI values are ignored.
type DebtService struct {
	storage *storage.Repository
}

func NewDebtService(storage *storage.Repository) *DebtService {
	return &DebtService{storage: storage}
}

// Create validates a new debt, derives its EMI and opening balance and
// schedules the first payment 30 days after the start date when the client
// did not pick one.
func (s *DebtService) Create(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}

	d.ID = uuid.NewString()
	d.EMI = core.ComputeEMI(d.Principal, d.InterestRate, d.TenureMonths)
	d.Remaining = d.Principal
	d.TotalPaid = 0
	d.Status = core.DebtActive
	if d.NextPaymentDate.IsZero() {
		d.NextPaymentDate = d.StartDate.AddDate(0, 0, 30)
	}

	if err := s.storage.CreateDebt(ctx, d); err != nil {
		return core.Debt{}, err
	}

	slog.InfoContext(ctx, "Debt created",
		"debt_id", d.ID, "user_id", d.UserID, "emi", d.EMI)
	return d, nil
}

// Update applies editable fields and recomputes the EMI when any of the
// principal, rate or tenure changed. Remaining and TotalPaid only move
// through payments.
func (s *DebtService) Update(ctx context.Context, userID, id string, in core.Debt) (core.Debt, error) {
	d, err := s.storage.GetDebt(ctx, userID, id)
	if err != nil {
		return core.Debt{}, err
	}

	d.Name = in.Name
	d.Creditor = in.Creditor
	d.DebtType = in.DebtType
	d.Principal = in.Principal
	d.InterestRate = in.InterestRate
	d.TenureMonths = in.TenureMonths
	d.StartDate = in.StartDate
	d.Notes = in.Notes
	if !in.NextPaymentDate.IsZero() {
		d.NextPaymentDate = in.NextPaymentDate
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	d.EMI = core.ComputeEMI(d.Principal, d.InterestRate, d.TenureMonths)

	if err := s.storage.UpdateDebt(ctx, d); err != nil {
		return core.Debt{}, err
	}
	return d, nil
}

func (s *DebtService) Get(ctx context.Context, userID, id string) (core.Debt, error) {
	return s.storage.GetDebt(ctx, userID, id)
}

func (s *DebtService) List(ctx context.Context, userID string) ([]core.Debt, error) {
	return s.storage.ListDebts(ctx, userID)
}

func (s *DebtService) Delete(ctx context.Context, userID, id string) error {
	return s.storage.DeleteDebt(ctx, userID, id)
}

// Summary aggregates all debts for the stats endpoint.
func (s *DebtService) Summary(ctx context.Context, userID string) (core.DebtMetrics, error) {
	debts, err := s.storage.ListDebts(ctx, userID)
	if err != nil {
		return core.DebtMetrics{}, err
	}
	return core.SummarizeDebts(debts), nil
}
