package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

// Income handlers

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	created, err := s.income.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toIncomeResponse(created))
}

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	records, err := s.income.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]incomeResponse, 0, len(records))
	for _, in := range records {
		out = append(out, toIncomeResponse(in))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	in, err := s.income.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toIncomeResponse(in))
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	updated, err := s.income.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toIncomeResponse(updated))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.income.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleIncomeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.income.MonthlyStats(r.Context(), UserID(r.Context()), monthRef(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"month":        stats.Month.Format(dateLayout),
		"total":        stats.Total,
		"record_count": stats.RecordCount,
		"by_type":      stats.ByType,
	})
}

// Expense handlers

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	created, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var (
		records []core.Expense
		err     error
	)
	userID := UserID(r.Context())
	records, err = s.expenses.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	// Optional category filter.
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := records[:0]
		for _, e := range records {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		records = filtered
	}

	out := make([]expenseResponse, 0, len(records))
	for _, e := range records {
		out = append(out, toExpenseResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.expenses.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	updated, err := s.expenses.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleExpenseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.expenses.MonthlyStats(r.Context(), UserID(r.Context()), monthRef(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	top := make([]expenseResponse, 0, len(stats.TopExpenses))
	for _, e := range stats.TopExpenses {
		top = append(top, toExpenseResponse(e))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"month":        stats.Month.Format(dateLayout),
		"total":        stats.Total,
		"record_count": stats.RecordCount,
		"by_category":  stats.ByCategory,
		"top_expenses": top,
	})
}
