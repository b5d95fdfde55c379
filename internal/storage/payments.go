package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const paymentColumns = `id, user_id, debt_id, amount, method, date, status, reference_no, transaction_id, notes`

// CreatePaymentAndUpdateDebt records a payment and applies the resulting debt
// state in one transaction, so a crash never leaves a paid debt unadjusted.
func (r *Repository) CreatePaymentAndUpdateDebt(ctx context.Context, p core.Payment, d core.Debt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.DebtID, p.Amount, p.Method, p.Date, p.Status,
		p.ReferenceNo, p.TransactionID, p.Notes); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE debts SET remaining = ?, total_paid = ?, status = ?, next_payment_date = ?
		WHERE id = ? AND user_id = ?`,
		d.Remaining, d.TotalPaid, d.Status, nullTime(d.NextPaymentDate), d.ID, d.UserID)
	if err != nil {
		return fmt.Errorf("update debt after payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *Repository) GetPayment(ctx context.Context, userID, id string) (core.Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE id = ? AND user_id = ?`, id, userID)
	return scanPayment(row)
}

func (r *Repository) ListPayments(ctx context.Context, userID string) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *Repository) ListPaymentsByDebt(ctx context.Context, userID, debtID string) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE user_id = ? AND debt_id = ? ORDER BY date DESC`, userID, debtID)
	if err != nil {
		return nil, fmt.Errorf("list payments by debt: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *Repository) DeletePayment(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return requireRow(res)
}

func collectPayments(rows *sql.Rows) ([]core.Payment, error) {
	var payments []core.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (core.Payment, error) {
	var p core.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.DebtID, &p.Amount, &p.Method, &p.Date,
		&p.Status, &p.ReferenceNo, &p.TransactionID, &p.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Payment{}, ErrNotFound
	}
	if err != nil {
		return core.Payment{}, fmt.Errorf("scan payment: %w", err)
	}
	p.Date = p.Date.UTC()
	return p, nil
}
