package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// GoalService owns savings goals and milestone notifications.
type GoalService struct {
	storage       *storage.Repository
	notifications *NotificationService
}

func NewGoalService(storage *storage.Repository, notifications *NotificationService) *GoalService {
	return &GoalService{
		storage:       storage,
		notifications: notifications,
	}
}

// GoalsSummary aggregates every goal for the summary endpoint.
type GoalsSummary struct {
	Goals          []core.Goal `json:"goals"`
	ActiveCount    int         `json:"active_count"`
	CompletedCount int         `json:"completed_count"`
	TotalTarget    float64     `json:"total_target"`
	TotalSaved     float64     `json:"total_saved"`
	OverallPct     float64     `json:"overall_pct"`
}

func (s *GoalService) Create(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.ID = uuid.NewString()
	g.Status = core.GoalActive
	g.Progress = core.Percentage(g.Current, g.Target)

	if err := s.storage.CreateGoal(ctx, g); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id string, in core.Goal) (core.Goal, error) {
	g, err := s.storage.GetGoal(ctx, userID, id)
	if err != nil {
		return core.Goal{}, err
	}
	g.Title = in.Title
	g.GoalType = in.GoalType
	g.Target = in.Target
	g.TargetDate = in.TargetDate
	g.Priority = in.Priority
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.Progress = core.Percentage(g.Current, g.Target)
	if g.Target > 0 && g.Current >= g.Target {
		g.Status = core.GoalCompleted
	}

	if err := s.storage.UpdateGoal(ctx, g); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Get(ctx context.Context, userID, id string) (core.Goal, error) {
	return s.storage.GetGoal(ctx, userID, id)
}

func (s *GoalService) List(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.storage.ListGoals(ctx, userID)
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return s.storage.DeleteGoal(ctx, userID, id)
}

// Contribute adds money to a goal. Crossing a quarter milestone (25/50/75/100)
// raises a goal_milestone notification; completion flips the status.
func (s *GoalService) Contribute(ctx context.Context, userID, id string, amount float64) (core.Goal, error) {
	g, err := s.storage.GetGoal(ctx, userID, id)
	if err != nil {
		return core.Goal{}, err
	}

	updated, milestone, err := core.ApplyContribution(g, amount)
	if err != nil {
		return core.Goal{}, err
	}

	if err := s.storage.UpdateGoal(ctx, updated); err != nil {
		return core.Goal{}, err
	}

	if milestone > 0 {
		if _, err := s.notifications.Notify(ctx, userID, core.NotifyGoalMilestone,
			fmt.Sprintf("Goal milestone: %s", updated.Title),
			fmt.Sprintf("You have reached %d%% of your goal (%.2f of %.2f)",
				milestone, updated.Current, updated.Target)); err != nil {
			slog.ErrorContext(ctx, "Failed to raise milestone notification",
				"goal_id", updated.ID, "error", err)
		}
	}

	return updated, nil
}

// Summary aggregates all goals for the summary/all endpoint.
func (s *GoalService) Summary(ctx context.Context, userID string) (GoalsSummary, error) {
	goals, err := s.storage.ListGoals(ctx, userID)
	if err != nil {
		return GoalsSummary{}, err
	}

	summary := GoalsSummary{Goals: goals}
	for _, g := range goals {
		switch g.Status {
		case core.GoalActive:
			summary.ActiveCount++
		case core.GoalCompleted:
			summary.CompletedCount++
		}
		summary.TotalTarget += g.Target
		summary.TotalSaved += g.Current
	}
	summary.OverallPct = core.Percentage(summary.TotalSaved, summary.TotalTarget)
	return summary, nil
}
