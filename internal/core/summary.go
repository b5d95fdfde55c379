package core

import (
	"sort"
	"time"
)

// DebtMetrics summarizes the user's debt position.
type DebtMetrics struct {
	TotalDebt      float64
	ActiveCount    int
	CompletedCount int
	MonthlyEMI     float64
	TotalPaid      float64
	UpcomingDebts  []Debt // active debts by next payment date, at most MaxUpcoming
}

// MaxUpcoming caps the upcoming-payments list on dashboards.
const MaxUpcoming = 5

// HealthMetrics carries the ratio inputs and the resulting score.
type HealthMetrics struct {
	EMIToIncomePct  float64
	DebtToIncomePct float64
	SavingsRatePct  float64
	Score           int
}

// Overview is the full dashboard document computed from one consistent
// snapshot of a user's records and a reference instant.
type Overview struct {
	Debt   DebtMetrics
	Income struct {
		MonthlyTotal float64
		RecordCount  int
		ByType       map[string]float64
	}
	Expenses struct {
		MonthlyTotal   float64
		MonthlySavings float64
		SavingsRatePct float64
		RecordCount    int
		ByCategory     map[string]float64
	}
	Payments struct {
		MonthlyTotal float64
		TotalCount   int
	}
	Goals struct {
		ActiveCount    int
		CompletedCount int
		TotalTarget    float64
		TotalCurrent   float64
		OverallPct     float64
	}
	Health HealthMetrics
}

// MonthlySummary is the compact income/expense/payment digest for one month.
type MonthlySummary struct {
	Income         float64
	Expenses       float64
	Payments       float64
	Savings        float64
	SavingsRatePct float64
}

// SummarizeDebts reduces a debt list to its dashboard metrics.
func SummarizeDebts(debts []Debt) DebtMetrics {
	m := DebtMetrics{}
	for _, d := range debts {
		m.TotalDebt += d.Remaining
		m.TotalPaid += d.TotalPaid
		switch d.Status {
		case DebtActive:
			m.ActiveCount++
			m.MonthlyEMI += d.EMI
			m.UpcomingDebts = append(m.UpcomingDebts, d)
		case DebtCompleted:
			m.CompletedCount++
		}
	}
	sort.Slice(m.UpcomingDebts, func(i, j int) bool {
		return m.UpcomingDebts[i].NextPaymentDate.Before(m.UpcomingDebts[j].NextPaymentDate)
	})
	if len(m.UpcomingDebts) > MaxUpcoming {
		m.UpcomingDebts = m.UpcomingDebts[:MaxUpcoming]
	}
	return m
}

// BuildOverview assembles the dashboard from already-fetched record sets.
// The debt-to-income ratio intentionally divides outstanding principal by
// annualized current-month income, matching the historical behavior; see the
// design notes before "fixing" it.
func BuildOverview(debts []Debt, income []Income, expenses []Expense, goals []Goal, payments []Payment, ref time.Time) Overview {
	var o Overview

	o.Debt = SummarizeDebts(debts)

	monthIncome := FilterToMonth(income, ref)
	monthExpenses := FilterToMonth(expenses, ref)
	monthPayments := FilterToMonth(payments, ref)

	monthlyIncome := SumAmounts(monthIncome, func(i Income) float64 { return i.Amount })
	monthlyExpenses := SumAmounts(monthExpenses, func(e Expense) float64 { return e.Amount })
	monthlySavings := monthlyIncome - monthlyExpenses

	o.Income.MonthlyTotal = monthlyIncome
	o.Income.RecordCount = len(income)
	o.Income.ByType = GroupSum(monthIncome,
		func(i Income) string { return i.IncomeType },
		func(i Income) float64 { return i.Amount })

	o.Expenses.MonthlyTotal = monthlyExpenses
	o.Expenses.MonthlySavings = monthlySavings
	o.Expenses.SavingsRatePct = Percentage(monthlySavings, monthlyIncome)
	o.Expenses.RecordCount = len(expenses)
	o.Expenses.ByCategory = GroupSum(monthExpenses,
		func(e Expense) string { return e.Category },
		func(e Expense) float64 { return e.Amount })

	o.Payments.MonthlyTotal = SumAmounts(monthPayments, func(p Payment) float64 { return p.Amount })
	o.Payments.TotalCount = len(payments)

	for _, g := range goals {
		switch g.Status {
		case GoalActive:
			o.Goals.ActiveCount++
		case GoalCompleted:
			o.Goals.CompletedCount++
		}
		o.Goals.TotalTarget += g.Target
		o.Goals.TotalCurrent += g.Current
	}
	o.Goals.OverallPct = Percentage(o.Goals.TotalCurrent, o.Goals.TotalTarget)

	o.Health.EMIToIncomePct = Percentage(o.Debt.MonthlyEMI, monthlyIncome)
	o.Health.DebtToIncomePct = Percentage(o.Debt.TotalDebt, monthlyIncome*12)
	o.Health.SavingsRatePct = o.Expenses.SavingsRatePct
	o.Health.Score = HealthScore(o.Health.EMIToIncomePct, o.Health.DebtToIncomePct, o.Health.SavingsRatePct)

	return o
}

// BuildMonthlySummary reduces one month of records to the compact digest.
func BuildMonthlySummary(income []Income, expenses []Expense, payments []Payment, ref time.Time) MonthlySummary {
	in := SumAmounts(FilterToMonth(income, ref), func(i Income) float64 { return i.Amount })
	ex := SumAmounts(FilterToMonth(expenses, ref), func(e Expense) float64 { return e.Amount })
	pay := SumAmounts(FilterToMonth(payments, ref), func(p Payment) float64 { return p.Amount })
	return MonthlySummary{
		Income:         in,
		Expenses:       ex,
		Payments:       pay,
		Savings:        in - ex,
		SavingsRatePct: Percentage(in-ex, in),
	}
}
