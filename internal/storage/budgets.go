package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const budgetColumns = `id, user_id, category, monthly_limit, alert_threshold, active`

// CreateBudget inserts a budget. At most one active budget may exist per
// category for a user; a second one is rejected with ErrConflict.
func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) error {
	if b.Active {
		var count int
		err := r.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM budgets WHERE user_id = ? AND category = ? AND active = 1`,
			b.UserID, b.Category).Scan(&count)
		if err != nil {
			return fmt.Errorf("check existing budget: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Category, b.MonthlyLimit, b.AlertThreshold, b.Active)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (r *Repository) GetBudget(ctx context.Context, userID, id string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	return scanBudget(row)
}

// GetActiveBudgetByCategory returns the single active budget for a category,
// or ErrNotFound when none exists.
func (r *Repository) GetActiveBudgetByCategory(ctx context.Context, userID, category string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = ? AND category = ? AND active = 1`, userID, category)
	return scanBudget(row)
}

func (r *Repository) ListBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpdateBudget rewrites a budget, holding the same one-active-per-category
// invariant as CreateBudget: activating a duplicate, or moving an active
// budget onto an occupied category, is ErrConflict.
func (r *Repository) UpdateBudget(ctx context.Context, b core.Budget) error {
	if b.Active {
		var count int
		err := r.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM budgets
			WHERE user_id = ? AND category = ? AND active = 1 AND id != ?`,
			b.UserID, b.Category, b.ID).Scan(&count)
		if err != nil {
			return fmt.Errorf("check existing budget: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET category = ?, monthly_limit = ?, alert_threshold = ?, active = ?
		WHERE id = ? AND user_id = ?`,
		b.Category, b.MonthlyLimit, b.AlertThreshold, b.Active, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteBudget(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var b core.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.MonthlyLimit, &b.AlertThreshold, &b.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("scan budget: %w", err)
	}
	return b, nil
}
