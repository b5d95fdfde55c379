package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const incomeColumns = `id, user_id, title, income_type, amount, source, frequency, date, notes`

func (r *Repository) CreateIncome(ctx context.Context, in core.Income) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO income (`+incomeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.UserID, in.Title, in.IncomeType, in.Amount, in.Source, in.Frequency, in.Date, in.Notes)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

func (r *Repository) GetIncome(ctx context.Context, userID, id string) (core.Income, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+incomeColumns+` FROM income WHERE id = ? AND user_id = ?`, id, userID)
	return scanIncome(row)
}

func (r *Repository) ListIncome(ctx context.Context, userID string) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+incomeColumns+` FROM income WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var records []core.Income
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, in)
	}
	return records, rows.Err()
}

func (r *Repository) UpdateIncome(ctx context.Context, in core.Income) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE income SET title = ?, income_type = ?, amount = ?, source = ?,
			frequency = ?, date = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		in.Title, in.IncomeType, in.Amount, in.Source, in.Frequency, in.Date, in.Notes,
		in.ID, in.UserID)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteIncome(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM income WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return requireRow(res)
}

func scanIncome(row rowScanner) (core.Income, error) {
	var in core.Income
	err := row.Scan(&in.ID, &in.UserID, &in.Title, &in.IncomeType, &in.Amount,
		&in.Source, &in.Frequency, &in.Date, &in.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Income{}, ErrNotFound
	}
	if err != nil {
		return core.Income{}, fmt.Errorf("scan income: %w", err)
	}
	in.Date = in.Date.UTC()
	return in, nil
}
