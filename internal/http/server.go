// Package http exposes the JSON API.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/karthikeyanvk18/Clerro/internal/auth"
	"github.com/karthikeyanvk18/Clerro/internal/log"
	"github.com/karthikeyanvk18/Clerro/internal/services"
)

type Server struct {
	router *mux.Router
	logger *log.Logger

	tokens        *auth.Manager
	users         *services.UserService
	debts         *services.DebtService
	income        *services.IncomeService
	expenses      *services.ExpenseService
	goals         *services.GoalService
	payments      *services.PaymentService
	budgets       *services.BudgetService
	dashboard     *services.DashboardService
	notifications *services.NotificationService
}

type Services struct {
	Users         *services.UserService
	Debts         *services.DebtService
	Income        *services.IncomeService
	Expenses      *services.ExpenseService
	Goals         *services.GoalService
	Payments      *services.PaymentService
	Budgets       *services.BudgetService
	Dashboard     *services.DashboardService
	Notifications *services.NotificationService
}

func NewServer(tokens *auth.Manager, svc Services, logger *log.Logger) *Server {
	s := &Server{
		logger:        logger.WithComponent(log.ComponentHTTP),
		tokens:        tokens,
		users:         svc.Users,
		debts:         svc.Debts,
		income:        svc.Income,
		expenses:      svc.Expenses,
		goals:         svc.Goals,
		payments:      svc.Payments,
		budgets:       svc.Budgets,
		dashboard:     svc.Dashboard,
		notifications: svc.Notifications,
	}
	s.routes(logger)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(logger *log.Logger) {
	r := mux.NewRouter()
	r.Use(securityHeaders)
	r.Use(log.RequestMiddleware(logger))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", s.handleSignUp).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(s.tokens))

	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	api.HandleFunc("/users/profile", s.handleMe).Methods(http.MethodGet)
	api.HandleFunc("/users/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleSaveSettings).Methods(http.MethodPut)

	api.HandleFunc("/debts", s.handleCreateDebt).Methods(http.MethodPost)
	api.HandleFunc("/debts", s.handleListDebts).Methods(http.MethodGet)
	api.HandleFunc("/debts/stats/summary", s.handleDebtSummary).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}", s.handleGetDebt).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}", s.handleUpdateDebt).Methods(http.MethodPut)
	api.HandleFunc("/debts/{id}", s.handleDeleteDebt).Methods(http.MethodDelete)

	api.HandleFunc("/income", s.handleCreateIncome).Methods(http.MethodPost)
	api.HandleFunc("/income", s.handleListIncome).Methods(http.MethodGet)
	api.HandleFunc("/income/stats/monthly", s.handleIncomeStats).Methods(http.MethodGet)
	api.HandleFunc("/income/{id}", s.handleGetIncome).Methods(http.MethodGet)
	api.HandleFunc("/income/{id}", s.handleUpdateIncome).Methods(http.MethodPut)
	api.HandleFunc("/income/{id}", s.handleDeleteIncome).Methods(http.MethodDelete)

	api.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses", s.handleListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses/stats/monthly", s.handleExpenseStats).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", s.handleGetExpense).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", s.handleUpdateExpense).Methods(http.MethodPut)
	api.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods(http.MethodDelete)

	api.HandleFunc("/goals", s.handleCreateGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals", s.handleListGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals/summary/all", s.handleGoalsSummary).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id}", s.handleGetGoal).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id}", s.handleUpdateGoal).Methods(http.MethodPut)
	api.HandleFunc("/goals/{id}", s.handleDeleteGoal).Methods(http.MethodDelete)
	api.HandleFunc("/goals/{id}/contribute", s.handleContribute).Methods(http.MethodPost)

	api.HandleFunc("/payments", s.handleRecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/payments", s.handleListPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments/stats/monthly", s.handlePaymentStats).Methods(http.MethodGet)
	api.HandleFunc("/payments/debt/{debtId}", s.handlePaymentsByDebt).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", s.handleGetPayment).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", s.handleDeletePayment).Methods(http.MethodDelete)

	api.HandleFunc("/budgets", s.handleCreateBudget).Methods(http.MethodPost)
	api.HandleFunc("/budgets", s.handleListBudgets).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{id}", s.handleGetBudget).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{id}", s.handleUpdateBudget).Methods(http.MethodPut)
	api.HandleFunc("/budgets/{id}", s.handleDeleteBudget).Methods(http.MethodDelete)
	api.HandleFunc("/budgets/{id}/status", s.handleBudgetStatus).Methods(http.MethodGet)

	api.HandleFunc("/dashboard/overview", s.handleOverview).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/monthly-summary", s.handleMonthlySummary).Methods(http.MethodGet)

	api.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read-all", s.handleMarkAllNotificationsRead).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
