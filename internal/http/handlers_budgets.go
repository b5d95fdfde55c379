package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.budgets.Create(r.Context(), req.toDomain(UserID(r.Context())))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toBudgetResponse(created))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	b, err := s.budgets.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.budgets.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"],
		req.toDomain(UserID(r.Context())))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBudgetResponse(updated))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.budgets.Status(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], time.Now().UTC())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"budget":          toBudgetResponse(status.Budget),
		"month":           status.Month.Format(dateLayout),
		"spent":           status.Usage.Spent,
		"remaining":       status.Usage.Remaining,
		"percent_used":    status.Usage.PercentUsed,
		"alert_triggered": status.Usage.AlertTriggered,
	})
}
