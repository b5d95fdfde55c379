package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := req.toDomain(UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	recorded, err := s.payments.Record(r.Context(), p)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPaymentResponse(recorded))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := s.payments.Get(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (s *Server) handlePaymentsByDebt(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.ListByDebt(r.Context(), UserID(r.Context()), mux.Vars(r)["debtId"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handlePaymentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.payments.MonthlyStats(r.Context(), UserID(r.Context()), monthRef(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"month":       stats.Month.Format(dateLayout),
		"total":       stats.Total,
		"count":       stats.Count,
		"average":     stats.Average,
		"total_count": stats.TotalCount,
	})
}
