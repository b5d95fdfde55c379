package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const expenseColumns = `id, user_id, title, category, amount, date, description, receipt_url, tags`

func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Category, e.Amount, e.Date, e.Description,
		e.ReceiptURL, joinTags(e.Tags))
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *Repository) GetExpense(ctx context.Context, userID, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	return scanExpense(row)
}

func (r *Repository) ListExpenses(ctx context.Context, userID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *Repository) ListExpensesByCategory(ctx context.Context, userID, category string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE user_id = ? AND category = ? ORDER BY date DESC`, userID, category)
	if err != nil {
		return nil, fmt.Errorf("list expenses by category: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET title = ?, category = ?, amount = ?, date = ?,
			description = ?, receipt_url = ?, tags = ?
		WHERE id = ? AND user_id = ?`,
		e.Title, e.Category, e.Amount, e.Date, e.Description, e.ReceiptURL,
		joinTags(e.Tags), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var tags string
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Category, &e.Amount, &e.Date,
		&e.Description, &e.ReceiptURL, &tags)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	e.Date = e.Date.UTC()
	e.Tags = splitTags(tags)
	return e, nil
}
