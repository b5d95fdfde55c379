package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

const goalColumns = `id, user_id, title, goal_type, target, current, target_date, priority, status`

func (r *Repository) CreateGoal(ctx context.Context, g core.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.GoalType, g.Target, g.Current,
		nullTime(g.TargetDate), g.Priority, g.Status)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *Repository) GetGoal(ctx context.Context, userID, id string) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	return scanGoal(row)
}

func (r *Repository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY target_date`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *Repository) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET title = ?, goal_type = ?, target = ?, current = ?,
			target_date = ?, priority = ?, status = ?
		WHERE id = ? AND user_id = ?`,
		g.Title, g.GoalType, g.Target, g.Current, nullTime(g.TargetDate),
		g.Priority, g.Status, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res)
}

func scanGoal(row rowScanner) (core.Goal, error) {
	var g core.Goal
	var target sql.NullTime
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.GoalType, &g.Target, &g.Current,
		&target, &g.Priority, &g.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	g.TargetDate = fromNullTime(target)
	g.Progress = core.Percentage(g.Current, g.Target)
	return g, nil
}
