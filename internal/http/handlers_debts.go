package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	created, err := s.debts.Create(r.Context(), d)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toDebtResponse(created))
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.debts.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toDebtResponses(debts))
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	d, err := s.debts.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toDebtResponse(d))
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	updated, err := s.debts.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toDebtResponse(updated))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.debts.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDebtSummary(w http.ResponseWriter, r *http.Request) {
	m, err := s.debts.Summary(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_debt":      m.TotalDebt,
		"active_count":    m.ActiveCount,
		"completed_count": m.CompletedCount,
		"monthly_emi":     m.MonthlyEMI,
		"total_paid":      m.TotalPaid,
		"upcoming_debts":  toDebtResponses(m.UpcomingDebts),
	})
}
