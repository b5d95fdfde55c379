package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	g, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	created, err := s.goals.Create(r.Context(), g)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGoalResponse(created))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.goals.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	updated, err := s.goals.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(updated))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		respondServiceError(w, r, core.ErrInvalidAmount)
		return
	}

	updated, err := s.goals.Contribute(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], req.Amount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(updated))
}

func (s *Server) handleGoalsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.goals.Summary(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	goals := make([]goalResponse, 0, len(summary.Goals))
	for _, g := range summary.Goals {
		goals = append(goals, toGoalResponse(g))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"goals":           goals,
		"active_count":    summary.ActiveCount,
		"completed_count": summary.CompletedCount,
		"total_target":    summary.TotalTarget,
		"total_saved":     summary.TotalSaved,
		"overall_pct":     summary.OverallPct,
	})
}
