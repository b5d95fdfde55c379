package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const debtColumns = `id, user_id, name, creditor, debt_type, principal, interest_rate,
	tenure_months, emi, remaining, total_paid, status, start_date, next_payment_date, notes`

func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (`+debtColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Name, d.Creditor, d.DebtType, d.Principal, d.InterestRate,
		d.TenureMonths, d.EMI, d.Remaining, d.TotalPaid, d.Status, d.StartDate,
		nullTime(d.NextPaymentDate), d.Notes)
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

func (r *Repository) GetDebt(ctx context.Context, userID, id string) (core.Debt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+debtColumns+` FROM debts WHERE id = ? AND user_id = ?`, id, userID)
	return scanDebt(row)
}

func (r *Repository) ListDebts(ctx context.Context, userID string) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+debtColumns+` FROM debts WHERE user_id = ? ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// ListDebtsByStatus returns a user's debts filtered to one status, ordered by
// next payment date so reminder scans see the soonest first.
func (r *Repository) ListDebtsByStatus(ctx context.Context, userID string, status core.DebtStatus) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+debtColumns+` FROM debts
		WHERE user_id = ? AND status = ?
		ORDER BY next_payment_date`, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list debts by status: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// ListActiveDebtsDueBefore returns every active debt, across all users, whose
// next payment falls on or before the cutoff. Used by the reminder scan.
func (r *Repository) ListActiveDebtsDueBefore(ctx context.Context, cutoff time.Time) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+debtColumns+` FROM debts
		WHERE status = ? AND next_payment_date IS NOT NULL AND next_payment_date <= ?
		ORDER BY next_payment_date`, core.DebtActive, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list due debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (r *Repository) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE debts SET name = ?, creditor = ?, debt_type = ?, principal = ?,
			interest_rate = ?, tenure_months = ?, emi = ?, remaining = ?,
			total_paid = ?, status = ?, start_date = ?, next_payment_date = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		d.Name, d.Creditor, d.DebtType, d.Principal, d.InterestRate, d.TenureMonths,
		d.EMI, d.Remaining, d.TotalPaid, d.Status, d.StartDate, nullTime(d.NextPaymentDate),
		d.Notes, d.ID, d.UserID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteDebt(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebt(row rowScanner) (core.Debt, error) {
	var d core.Debt
	var next sql.NullTime
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Creditor, &d.DebtType, &d.Principal,
		&d.InterestRate, &d.TenureMonths, &d.EMI, &d.Remaining, &d.TotalPaid,
		&d.Status, &d.StartDate, &next, &d.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Debt{}, ErrNotFound
	}
	if err != nil {
		return core.Debt{}, fmt.Errorf("scan debt: %w", err)
	}
	d.StartDate = d.StartDate.UTC()
	d.NextPaymentDate = fromNullTime(next)
	return d, nil
}
