// Package core holds the financial aggregation engine: pure functions over
// already-materialized record slices. Nothing here performs I/O or reads the
// wall clock; the reference instant is always an explicit parameter.
package core

import (
	"math"
	"time"
)

// Health score rubric. The thresholds and deltas are a fixed heuristic that
// must be reproduced exactly for compatibility with historical scores.
const (
	healthBaseline = 100

	emiRatioHigh        = 40.0
	emiRatioElevated    = 30.0
	emiHighPenalty      = 30
	emiElevatedPenalty  = 15
	debtRatioHigh       = 50.0
	debtRatioElevated   = 30.0
	debtHighPenalty     = 25
	debtElevatedPenalty = 12
	savingsRateGood     = 20.0
	savingsRateFair     = 10.0
	savingsGoodBonus    = 20
	savingsFairBonus    = 10
)

// GoalMilestones are the progress percentages whose crossing is reported to
// the notification layer.
var GoalMilestones = [...]int{25, 50, 75, 100}

// ComputeEMI returns the equated monthly installment for a loan with the
// given principal, annual interest rate (percent) and tenure in months.
// Callers must validate tenureMonths > 0; this function does not defend
// against a zero tenure.
func ComputeEMI(principal, annualRatePct float64, tenureMonths int) float64 {
	r := annualRatePct / 100 / 12
	if r == 0 {
		return principal / float64(tenureMonths)
	}
	factor := math.Pow(1+r, float64(tenureMonths))
	return principal * r * factor / (factor - 1)
}

// MonthWindow returns the half-open interval [start-of-month(ref),
// start-of-next-month(ref)). Time-of-day fields are zeroed and the month is
// rolled in ref's location, so month-length handling is done once here.
func MonthWindow(ref time.Time) (start, end time.Time) {
	start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

// Dated is any record carrying an occurrence instant.
type Dated interface {
	OccurredOn() time.Time
}

// FilterToMonth keeps records whose date falls within ref's month. The end
// boundary is exclusive: a record at the exact start of the next month is
// dropped. Shared by income, expenses and payments.
func FilterToMonth[T Dated](records []T, ref time.Time) []T {
	start, end := MonthWindow(ref)
	var out []T
	for _, r := range records {
		d := r.OccurredOn()
		if !d.Before(start) && d.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

// SumAmounts totals the amounts selected by fn.
func SumAmounts[T any](records []T, fn func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += fn(r)
	}
	return total
}

// GroupSum maps each record's group key to the summed amount for that key.
// Records with an empty key are dropped silently; that is documented
// behavior, not an error.
func GroupSum[T any](records []T, key func(T) string, amount func(T) float64) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		out[k] += amount(r)
	}
	return out
}

// Percentage returns part/total*100, yielding 0 for a zero total. Every
// percentage in the engine goes through this zero-denominator guard.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// HealthScore combines debt burden and savings behavior into a bounded
// [0,100] heuristic. It is monotonically non-increasing in both ratios and
// non-decreasing in the savings rate.
func HealthScore(emiRatioPct, debtRatioPct, savingsRatePct float64) int {
	score := healthBaseline

	switch {
	case emiRatioPct > emiRatioHigh:
		score -= emiHighPenalty
	case emiRatioPct > emiRatioElevated:
		score -= emiElevatedPenalty
	}

	switch {
	case debtRatioPct > debtRatioHigh:
		score -= debtHighPenalty
	case debtRatioPct > debtRatioElevated:
		score -= debtElevatedPenalty
	}

	switch {
	case savingsRatePct > savingsRateGood:
		score += savingsGoodBonus
	case savingsRatePct > savingsRateFair:
		score += savingsFairBonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// BudgetUsage is the evaluated state of one budget for the current month.
type BudgetUsage struct {
	Spent          float64
	Remaining      float64 // may be negative, not clamped
	PercentUsed    float64
	AlertTriggered bool
}

// EvaluateBudget computes usage of a monthly limit. A zero limit yields
// PercentUsed 0 and no alert regardless of spend. Dispatching the alert is
// the caller's concern; the engine only computes the flag.
func EvaluateBudget(limit, alertThresholdPct, spent float64) BudgetUsage {
	pct := Percentage(spent, limit)
	return BudgetUsage{
		Spent:          spent,
		Remaining:      limit - spent,
		PercentUsed:    pct,
		AlertTriggered: limit > 0 && pct >= alertThresholdPct,
	}
}

// ApplyContribution adds amount to an active goal and returns the updated
// goal plus the highest milestone crossed (0 when none). Crossing compares
// integer-truncated progress before and after the contribution. A non-active
// goal is rejected with ErrGoalNotActive and returned unchanged.
func ApplyContribution(g Goal, amount float64) (Goal, int, error) {
	if g.Status != GoalActive {
		return g, 0, ErrGoalNotActive
	}

	oldProgress := int(Percentage(g.Current, g.Target))

	g.Current += amount
	g.Progress = Percentage(g.Current, g.Target)
	if g.Target > 0 && g.Current >= g.Target {
		g.Status = GoalCompleted
	}

	newProgress := int(g.Progress)
	milestone := 0
	for _, m := range GoalMilestones {
		if oldProgress < m && newProgress >= m {
			milestone = m
		}
	}
	return g, milestone, nil
}
