package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestComputeEMI(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		tenure    int
		want      float64
	}{
		{"standard loan", 100000, 12, 12, 8884.88},
		{"zero rate is straight division", 12000, 0, 12, 1000},
		{"one month tenure", 5000, 0, 1, 5000},
		{"long tenure", 2500000, 8.5, 240, 21695.58},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeEMI(tc.principal, tc.rate, tc.tenure)
			if !almostEqual(got, tc.want, 0.01) {
				t.Fatalf("ComputeEMI(%v, %v, %d) = %v, want %v", tc.principal, tc.rate, tc.tenure, got, tc.want)
			}
		})
	}
}

func TestComputeEMIDeterministic(t *testing.T) {
	first := ComputeEMI(350000, 9.25, 60)
	for i := 0; i < 10; i++ {
		if got := ComputeEMI(350000, 9.25, 60); got != first {
			t.Fatalf("ComputeEMI not deterministic: %v vs %v", got, first)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	ref := time.Date(2025, 3, 17, 14, 22, 9, 123, time.UTC)
	start, end := MonthWindow(ref)
	if !start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}

	// December rolls into the next year.
	start, end = MonthWindow(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))
	if start.Month() != time.December || end.Year() != 2026 || end.Month() != time.January {
		t.Fatalf("year roll: start=%v end=%v", start, end)
	}
}

func TestFilterToMonthBoundaries(t *testing.T) {
	ref := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	records := []Expense{
		{Title: "first instant", Amount: 1, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "last instant", Amount: 2, Date: time.Date(2025, 2, 28, 23, 59, 59, 999999999, time.UTC)},
		{Title: "next month start", Amount: 4, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "previous month", Amount: 8, Date: time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)},
	}
	got := FilterToMonth(records, ref)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	var sum float64
	for _, e := range got {
		sum += e.Amount
	}
	if sum != 3 {
		t.Fatalf("wrong records kept, amount sum = %v", sum)
	}
}

func TestGroupSumPartitionProperty(t *testing.T) {
	expenses := []Expense{
		{Category: "food", Amount: 120},
		{Category: "food", Amount: 80},
		{Category: "transport", Amount: 45.5},
		{Category: "", Amount: 999}, // missing key, dropped from every sum
		{Category: "shopping", Amount: 310},
	}

	grouped := GroupSum(expenses,
		func(e Expense) string { return e.Category },
		func(e Expense) float64 { return e.Amount })

	if len(grouped) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(grouped))
	}
	if grouped["food"] != 200 {
		t.Fatalf("food = %v", grouped["food"])
	}

	var perGroupTotal float64
	for _, v := range grouped {
		perGroupTotal += v
	}
	var keyedTotal float64
	for _, e := range expenses {
		if e.Category != "" {
			keyedTotal += e.Amount
		}
	}
	if !almostEqual(perGroupTotal, keyedTotal, 1e-9) {
		t.Fatalf("partition property violated: %v != %v", perGroupTotal, keyedTotal)
	}
}

func TestHealthScore(t *testing.T) {
	cases := []struct {
		name                          string
		emiRatio, debtRatio, savings  float64
		want                          int
	}{
		{"all stressed", 45, 55, 5, 45},
		{"healthy clamps at 100", 10, 10, 25, 100},
		{"elevated emi only", 35, 10, 5, 85},
		{"elevated debt only", 10, 35, 5, 88},
		{"fair savings", 10, 10, 15, 100},
		{"boundary values fall to the lower band", 40, 50, 20, 83},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HealthScore(tc.emiRatio, tc.debtRatio, tc.savings)
			if got != tc.want {
				t.Fatalf("HealthScore(%v, %v, %v) = %d, want %d", tc.emiRatio, tc.debtRatio, tc.savings, got, tc.want)
			}
		})
	}
}

func TestHealthScoreMonotonicAndBounded(t *testing.T) {
	ratios := []float64{0, 10, 20, 30, 31, 40, 41, 50, 51, 80, 200}
	for _, fixed := range ratios {
		prev := 101
		for _, emi := range ratios {
			s := HealthScore(emi, fixed, fixed)
			if s < 0 || s > 100 {
				t.Fatalf("score out of range: %d", s)
			}
			if s > prev {
				t.Fatalf("score not non-increasing in EMI ratio: %d after %d", s, prev)
			}
			prev = s
		}
		prevSav := -1
		for _, sav := range ratios {
			s := HealthScore(fixed, fixed, sav)
			if prevSav >= 0 && s < prevSav {
				t.Fatalf("score not non-decreasing in savings rate: %d after %d", s, prevSav)
			}
			prevSav = s
		}
	}
}

func TestEvaluateBudget(t *testing.T) {
	u := EvaluateBudget(1000, 80, 850)
	if u.Spent != 850 || u.Remaining != 150 {
		t.Fatalf("usage = %+v", u)
	}
	if !almostEqual(u.PercentUsed, 85, 1e-9) || !u.AlertTriggered {
		t.Fatalf("expected 85%% with alert, got %+v", u)
	}

	// Overspend goes negative, not clamped.
	u = EvaluateBudget(1000, 80, 1300)
	if u.Remaining != -300 || !u.AlertTriggered {
		t.Fatalf("overspend usage = %+v", u)
	}

	// Zero limit never alerts.
	u = EvaluateBudget(0, 80, 500)
	if u.PercentUsed != 0 || u.AlertTriggered {
		t.Fatalf("zero limit usage = %+v", u)
	}

	// Threshold comparison is >=.
	u = EvaluateBudget(1000, 80, 800)
	if !u.AlertTriggered {
		t.Fatalf("exact threshold should alert: %+v", u)
	}
}

func TestApplyContribution(t *testing.T) {
	g := Goal{Title: "emergency fund", Target: 1000, Current: 900, Status: GoalActive}

	updated, milestone, err := ApplyContribution(g, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Current != 1050 {
		t.Fatalf("current = %v", updated.Current)
	}
	if !almostEqual(updated.Progress, 105, 1e-9) {
		t.Fatalf("progress = %v", updated.Progress)
	}
	if updated.Status != GoalCompleted {
		t.Fatalf("status = %v", updated.Status)
	}
	if milestone != 100 {
		t.Fatalf("milestone = %d, want 100", milestone)
	}
}

func TestApplyContributionMilestones(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		amount  float64
		want    int
	}{
		{"crosses 25", 200, 100, 25},
		{"crosses 50 exactly", 499, 1, 50},
		{"no crossing", 100, 50, 0},
		{"skips straight past 75", 400, 400, 75},
		{"zero target never crosses", 0, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := 1000.0
			if tc.name == "zero target never crosses" {
				target = 0
			}
			g := Goal{Title: "g", Target: target, Current: tc.current, Status: GoalActive}
			_, milestone, err := ApplyContribution(g, tc.amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if milestone != tc.want {
				t.Fatalf("milestone = %d, want %d", milestone, tc.want)
			}
		})
	}
}

func TestApplyContributionRejectsInactive(t *testing.T) {
	g := Goal{Title: "done", Target: 1000, Current: 1000, Progress: 100, Status: GoalCompleted}
	got, _, err := ApplyContribution(g, 50)
	if !errors.Is(err, ErrGoalNotActive) {
		t.Fatalf("expected ErrGoalNotActive, got %v", err)
	}
	if got != g {
		t.Fatalf("goal mutated on rejected contribution: %+v", got)
	}
}

func TestPercentageZeroGuard(t *testing.T) {
	if Percentage(50, 0) != 0 {
		t.Fatal("zero denominator must yield 0")
	}
	if !almostEqual(Percentage(1, 3), 33.3333, 0.001) {
		t.Fatal("percentage math wrong")
	}
}
