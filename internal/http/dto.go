package http

import (
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/core"
)

// Wire types. Dates travel as YYYY-MM-DD; derived fields (EMI, progress,
// remaining) appear in responses only.

const dateLayout = "2006-01-02"

type dateField string

func (d dateField) parse() (time.Time, error) {
	if d == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u core.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Currency:  u.Currency,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      userResponse `json:"user"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Currency string `json:"currency"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Currency string `json:"currency"`
}

type settingsPayload struct {
	EmailNotifications bool   `json:"email_notifications"`
	PushNotifications  bool   `json:"push_notifications"`
	ReminderDays       int    `json:"reminder_days"`
	Currency           string `json:"currency,omitempty"`
}

type debtRequest struct {
	Name            string    `json:"name"`
	Creditor        string    `json:"creditor"`
	DebtType        string    `json:"debt_type"`
	Principal       float64   `json:"principal"`
	InterestRate    float64   `json:"interest_rate"`
	TenureMonths    int       `json:"tenure_months"`
	StartDate       dateField `json:"start_date"`
	NextPaymentDate dateField `json:"next_payment_date"`
	Notes           string    `json:"notes"`
}

func (r debtRequest) toDomain(userID string) (core.Debt, error) {
	start, err := r.StartDate.parse()
	if err != nil {
		return core.Debt{}, err
	}
	next, err := r.NextPaymentDate.parse()
	if err != nil {
		return core.Debt{}, err
	}
	return core.Debt{
		UserID:          userID,
		Name:            r.Name,
		Creditor:        r.Creditor,
		DebtType:        r.DebtType,
		Principal:       r.Principal,
		InterestRate:    r.InterestRate,
		TenureMonths:    r.TenureMonths,
		StartDate:       start,
		NextPaymentDate: next,
		Notes:           r.Notes,
	}, nil
}

type debtResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Creditor        string  `json:"creditor"`
	DebtType        string  `json:"debt_type"`
	Principal       float64 `json:"principal"`
	InterestRate    float64 `json:"interest_rate"`
	TenureMonths    int     `json:"tenure_months"`
	EMI             float64 `json:"emi"`
	Remaining       float64 `json:"remaining"`
	TotalPaid       float64 `json:"total_paid"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	NextPaymentDate string  `json:"next_payment_date,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func toDebtResponse(d core.Debt) debtResponse {
	return debtResponse{
		ID:              d.ID,
		Name:            d.Name,
		Creditor:        d.Creditor,
		DebtType:        d.DebtType,
		Principal:       d.Principal,
		InterestRate:    d.InterestRate,
		TenureMonths:    d.TenureMonths,
		EMI:             d.EMI,
		Remaining:       d.Remaining,
		TotalPaid:       d.TotalPaid,
		Status:          string(d.Status),
		StartDate:       formatDate(d.StartDate),
		NextPaymentDate: formatDate(d.NextPaymentDate),
		Notes:           d.Notes,
	}
}

func toDebtResponses(debts []core.Debt) []debtResponse {
	out := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, toDebtResponse(d))
	}
	return out
}

type incomeRequest struct {
	Title      string    `json:"title"`
	IncomeType string    `json:"income_type"`
	Amount     float64   `json:"amount"`
	Source     string    `json:"source"`
	Frequency  string    `json:"frequency"`
	Date       dateField `json:"date"`
	Notes      string    `json:"notes"`
}

func (r incomeRequest) toDomain(userID string) (core.Income, error) {
	date, err := r.Date.parse()
	if err != nil {
		return core.Income{}, err
	}
	return core.Income{
		UserID:     userID,
		Title:      r.Title,
		IncomeType: r.IncomeType,
		Amount:     r.Amount,
		Source:     r.Source,
		Frequency:  r.Frequency,
		Date:       date,
		Notes:      r.Notes,
	}, nil
}

type incomeResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	IncomeType string  `json:"income_type"`
	Amount     float64 `json:"amount"`
	Source     string  `json:"source,omitempty"`
	Frequency  string  `json:"frequency,omitempty"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes,omitempty"`
}

func toIncomeResponse(in core.Income) incomeResponse {
	return incomeResponse{
		ID:         in.ID,
		Title:      in.Title,
		IncomeType: in.IncomeType,
		Amount:     in.Amount,
		Source:     in.Source,
		Frequency:  in.Frequency,
		Date:       formatDate(in.Date),
		Notes:      in.Notes,
	}
}

type expenseRequest struct {
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        dateField `json:"date"`
	Description string    `json:"description"`
	ReceiptURL  string    `json:"receipt_url"`
	Tags        []string  `json:"tags"`
}

func (r expenseRequest) toDomain(userID string) (core.Expense, error) {
	date, err := r.Date.parse()
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		UserID:      userID,
		Title:       r.Title,
		Category:    r.Category,
		Amount:      r.Amount,
		Date:        date,
		Description: r.Description,
		ReceiptURL:  r.ReceiptURL,
		Tags:        r.Tags,
	}, nil
}

type expenseResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
	Date        string   `json:"date"`
	Description string   `json:"description,omitempty"`
	ReceiptURL  string   `json:"receipt_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        formatDate(e.Date),
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		Tags:        e.Tags,
	}
}

type goalRequest struct {
	Title      string    `json:"title"`
	GoalType   string    `json:"goal_type"`
	Target     float64   `json:"target"`
	Current    float64   `json:"current"`
	TargetDate dateField `json:"target_date"`
	Priority   string    `json:"priority"`
}

func (r goalRequest) toDomain(userID string) (core.Goal, error) {
	target, err := r.TargetDate.parse()
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		UserID:     userID,
		Title:      r.Title,
		GoalType:   r.GoalType,
		Target:     r.Target,
		Current:    r.Current,
		TargetDate: target,
		Priority:   r.Priority,
	}, nil
}

type goalResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	GoalType   string  `json:"goal_type,omitempty"`
	Target     float64 `json:"target"`
	Current    float64 `json:"current"`
	TargetDate string  `json:"target_date,omitempty"`
	Priority   string  `json:"priority,omitempty"`
	Progress   float64 `json:"progress"`
	Status     string  `json:"status"`
}

func toGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		ID:         g.ID,
		Title:      g.Title,
		GoalType:   g.GoalType,
		Target:     g.Target,
		Current:    g.Current,
		TargetDate: formatDate(g.TargetDate),
		Priority:   g.Priority,
		Progress:   g.Progress,
		Status:     string(g.Status),
	}
}

type paymentRequest struct {
	DebtID      string    `json:"debt_id"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	Date        dateField `json:"date"`
	ReferenceNo string    `json:"reference_no"`
	Notes       string    `json:"notes"`
}

func (r paymentRequest) toDomain(userID string) (core.Payment, error) {
	date, err := r.Date.parse()
	if err != nil {
		return core.Payment{}, err
	}
	return core.Payment{
		UserID:      userID,
		DebtID:      r.DebtID,
		Amount:      r.Amount,
		Method:      r.Method,
		Date:        date,
		ReferenceNo: r.ReferenceNo,
		Notes:       r.Notes,
	}, nil
}

type paymentResponse struct {
	ID            string  `json:"id"`
	DebtID        string  `json:"debt_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method,omitempty"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	ReferenceNo   string  `json:"reference_no,omitempty"`
	TransactionID string  `json:"transaction_id"`
	Notes         string  `json:"notes,omitempty"`
}

func toPaymentResponse(p core.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		DebtID:        p.DebtID,
		Amount:        p.Amount,
		Method:        p.Method,
		Date:          formatDate(p.Date),
		Status:        string(p.Status),
		ReferenceNo:   p.ReferenceNo,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
	}
}

type budgetRequest struct {
	Category       string  `json:"category"`
	MonthlyLimit   float64 `json:"monthly_limit"`
	AlertThreshold float64 `json:"alert_threshold"`
	Active         *bool   `json:"active"`
}

func (r budgetRequest) toDomain(userID string) core.Budget {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return core.Budget{
		UserID:         userID,
		Category:       r.Category,
		MonthlyLimit:   r.MonthlyLimit,
		AlertThreshold: r.AlertThreshold,
		Active:         active,
	}
}

type budgetResponse struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	MonthlyLimit   float64 `json:"monthly_limit"`
	AlertThreshold float64 `json:"alert_threshold"`
	Active         bool    `json:"active"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:             b.ID,
		Category:       b.Category,
		MonthlyLimit:   b.MonthlyLimit,
		AlertThreshold: b.AlertThreshold,
		Active:         b.Active,
	}
}

type notificationResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func toNotificationResponse(n core.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type contributeRequest struct {
	Amount float64 `json:"amount"`
}
