package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	o, err := s.dashboard.Overview(r.Context(), UserID(r.Context()), time.Now().UTC())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOverviewResponse(o))
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	ref := monthRef(r)
	summary, err := s.dashboard.MonthlySummary(r.Context(), UserID(r.Context()), ref)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"month":            ref.Format(dateLayout),
		"income":           summary.Income,
		"expenses":         summary.Expenses,
		"payments":         summary.Payments,
		"savings":          summary.Savings,
		"savings_rate_pct": summary.SavingsRatePct,
	})
}

func toOverviewResponse(o core.Overview) map[string]any {
	return map[string]any{
		"debt": map[string]any{
			"total_debt":      o.Debt.TotalDebt,
			"active_count":    o.Debt.ActiveCount,
			"completed_count": o.Debt.CompletedCount,
			"monthly_emi":     o.Debt.MonthlyEMI,
			"total_paid":      o.Debt.TotalPaid,
			"upcoming_debts":  toDebtResponses(o.Debt.UpcomingDebts),
		},
		"income": map[string]any{
			"monthly_total": o.Income.MonthlyTotal,
			"record_count":  o.Income.RecordCount,
			"by_type":       o.Income.ByType,
		},
		"expenses": map[string]any{
			"monthly_total":    o.Expenses.MonthlyTotal,
			"monthly_savings":  o.Expenses.MonthlySavings,
			"savings_rate_pct": o.Expenses.SavingsRatePct,
			"record_count":     o.Expenses.RecordCount,
			"by_category":      o.Expenses.ByCategory,
		},
		"payments": map[string]any{
			"monthly_total": o.Payments.MonthlyTotal,
			"total_count":   o.Payments.TotalCount,
		},
		"goals": map[string]any{
			"active_count":    o.Goals.ActiveCount,
			"completed_count": o.Goals.CompletedCount,
			"total_target":    o.Goals.TotalTarget,
			"total_current":   o.Goals.TotalCurrent,
			"overall_pct":     o.Goals.OverallPct,
		},
		"health": map[string]any{
			"emi_to_income_pct":  o.Health.EMIToIncomePct,
			"debt_to_income_pct": o.Health.DebtToIncomePct,
			"savings_rate_pct":   o.Health.SavingsRatePct,
			"score":              o.Health.Score,
		},
	}
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := s.notifications.List(r.Context(), UserID(r.Context()), unreadOnly)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := s.notifications.MarkAllRead(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "read", "updated": updated})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := s.notifications.MarkRead(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
