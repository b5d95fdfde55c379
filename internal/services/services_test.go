package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/auth"
	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/log"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// testEnv wires every service against a temp SQLite database, a disabled
// mailer and no AMQP client, the same degraded setup the binaries run with
// when RabbitMQ and SMTP are not configured.
type testEnv struct {
	repo          *storage.Repository
	users         *UserService
	debts         *DebtService
	income        *IncomeService
	expenses      *ExpenseService
	goals         *GoalService
	payments      *PaymentService
	budgets       *BudgetService
	notifications *NotificationService
	dashboard     *DashboardService
	reminders     *ReminderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "services.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	logger := log.New(log.DefaultConfig())
	mailer := notify.NewMailer(notify.MailerConfig{}, logger)
	tokens := auth.NewManager("0123456789abcdef0123456789abcdef", time.Hour)

	notifications := NewNotificationService(repo, nil)
	budgets := NewBudgetService(repo, notifications)

	return &testEnv{
		repo:          repo,
		users:         NewUserService(repo, tokens, mailer),
		debts:         NewDebtService(repo),
		income:        NewIncomeService(repo, notifications),
		expenses:      NewExpenseService(repo, budgets),
		goals:         NewGoalService(repo, notifications),
		payments:      NewPaymentService(repo, notifications, mailer),
		budgets:       budgets,
		notifications: notifications,
		dashboard:     NewDashboardService(repo),
		reminders:     NewReminderService(repo, notifications, 3, logger),
	}
}

func (e *testEnv) signUp(t *testing.T, email string) core.User {
	t.Helper()
	u, token, err := e.users.SignUp(context.Background(), SignUpInput{
		Email:    email,
		Password: "longenoughpassword",
		FullName: "Test User",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if token == "" {
		t.Fatal("sign up returned empty token")
	}
	return u
}

func TestSignUpAndLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "alice@example.com")

	got, token, err := e.users.Login(ctx, "alice@example.com", "longenoughpassword")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID || token == "" {
		t.Fatalf("login result: %+v token=%q", got, token)
	}

	if _, _, err := e.users.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := e.users.Login(ctx, "nobody@example.com", "whatever-pass"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}

	// Signup seeds default settings.
	settings, err := e.users.GetSettings(ctx, u.ID)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.ReminderDays != 3 || !settings.EmailNotifications {
		t.Fatalf("default settings: %+v", settings)
	}
}

func TestSignUpRejectsWeakPasswordAndDuplicates(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signUp(t, "bob@example.com")

	if _, _, err := e.users.SignUp(ctx, SignUpInput{Email: "x@y.z", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password: %v", err)
	}
	_, _, err := e.users.SignUp(ctx, SignUpInput{Email: "bob@example.com", Password: "longenoughpassword"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestDebtCreateDerivesEMI(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "carl@example.com")

	d, err := e.debts.Create(ctx, core.Debt{
		UserID:       u.ID,
		Name:         "personal loan",
		Principal:    100000,
		InterestRate: 12,
		TenureMonths: 12,
		EMI:          999999, // client-supplied EMI is ignored
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.EMI < 8884 || d.EMI > 8885 {
		t.Fatalf("EMI = %v", d.EMI)
	}
	if d.Remaining != 100000 || d.Status != core.DebtActive {
		t.Fatalf("debt = %+v", d)
	}
	if !d.NextPaymentDate.Equal(d.StartDate.AddDate(0, 0, 30)) {
		t.Fatalf("next payment = %v", d.NextPaymentDate)
	}
}

func TestPaymentFlow(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "dora@example.com")

	d, err := e.debts.Create(ctx, core.Debt{
		UserID: u.ID, Name: "loan", Principal: 10000, InterestRate: 0,
		TenureMonths: 10, StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create debt: %v", err)
	}
	firstDue := d.NextPaymentDate

	if _, err := e.payments.Record(ctx, core.Payment{UserID: u.ID, DebtID: d.ID, Amount: 0}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("zero amount: %v", err)
	}
	if _, err := e.payments.Record(ctx, core.Payment{UserID: u.ID, DebtID: d.ID, Amount: 10001}); !errors.Is(err, core.ErrPaymentTooLarge) {
		t.Fatalf("overpayment: %v", err)
	}

	p, err := e.payments.Record(ctx, core.Payment{
		UserID: u.ID, DebtID: d.ID, Amount: 4000,
		Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if p.TransactionID == "" || p.Status != core.PaymentCompleted {
		t.Fatalf("payment = %+v", p)
	}

	got, err := e.debts.Get(ctx, u.ID, d.ID)
	if err != nil {
		t.Fatalf("get debt: %v", err)
	}
	if got.Remaining != 6000 || got.TotalPaid != 4000 {
		t.Fatalf("debt after payment: %+v", got)
	}
	if !got.NextPaymentDate.Equal(firstDue.Add(30 * 24 * time.Hour)) {
		t.Fatalf("next payment not advanced: %v", got.NextPaymentDate)
	}

	// Final payment completes the debt.
	if _, err := e.payments.Record(ctx, core.Payment{
		UserID: u.ID, DebtID: d.ID, Amount: 6000,
		Date: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("final payment: %v", err)
	}
	got, err = e.debts.Get(ctx, u.ID, d.ID)
	if err != nil {
		t.Fatalf("get debt: %v", err)
	}
	if got.Status != core.DebtCompleted || got.Remaining != 0 {
		t.Fatalf("debt not completed: %+v", got)
	}
	if !got.NextPaymentDate.IsZero() {
		t.Fatalf("completed debt still has due date: %v", got.NextPaymentDate)
	}

	// Paying a completed debt is an overpayment.
	if _, err := e.payments.Record(ctx, core.Payment{UserID: u.ID, DebtID: d.ID, Amount: 1}); !errors.Is(err, core.ErrPaymentTooLarge) {
		t.Fatalf("payment on completed debt: %v", err)
	}
}

func TestGoalContributeRaisesMilestoneNotification(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "eva@example.com")

	g, err := e.goals.Create(ctx, core.Goal{UserID: u.ID, Title: "emergency fund", Target: 1000})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	// 0 -> 30% crosses the 25 milestone.
	updated, err := e.goals.Contribute(ctx, u.ID, g.ID, 300)
	if err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if updated.Current != 300 || updated.Status != core.GoalActive {
		t.Fatalf("goal = %+v", updated)
	}

	notifs, err := e.notifications.List(ctx, u.ID, false)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	var milestone *core.Notification
	for i := range notifs {
		if notifs[i].Type == core.NotifyGoalMilestone {
			milestone = &notifs[i]
		}
	}
	if milestone == nil {
		t.Fatalf("no milestone notification in %+v", notifs)
	}

	// 30% -> 35% crosses nothing.
	before := len(notifs)
	if _, err := e.goals.Contribute(ctx, u.ID, g.ID, 50); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	notifs, _ = e.notifications.List(ctx, u.ID, false)
	if len(notifs) != before {
		t.Fatalf("unexpected notification: %+v", notifs)
	}

	// Finishing the goal completes it.
	updated, err = e.goals.Contribute(ctx, u.ID, g.ID, 650)
	if err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if updated.Status != core.GoalCompleted {
		t.Fatalf("goal not completed: %+v", updated)
	}

	// Contributions to completed goals are rejected.
	if _, err := e.goals.Contribute(ctx, u.ID, g.ID, 10); !errors.Is(err, core.ErrGoalNotActive) {
		t.Fatalf("contribute to completed: %v", err)
	}
}

func TestExpenseCreateTriggersBudgetAlert(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "finn@example.com")

	if _, err := e.budgets.Create(ctx, core.Budget{
		UserID: u.ID, Category: "food", MonthlyLimit: 1000, AlertThreshold: 80, Active: true,
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if _, err := e.expenses.Create(ctx, core.Expense{
		UserID: u.ID, Title: "groceries", Category: "food", Amount: 500, Date: date,
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	// 50% used: no alert yet.
	notifs, _ := e.notifications.List(ctx, u.ID, false)
	for _, n := range notifs {
		if n.Type == core.NotifyExpenseAlert {
			t.Fatalf("premature alert: %+v", n)
		}
	}

	// 85% used: alert fires.
	if _, err := e.expenses.Create(ctx, core.Expense{
		UserID: u.ID, Title: "dinner", Category: "food", Amount: 350, Date: date,
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	notifs, _ = e.notifications.List(ctx, u.ID, false)
	found := false
	for _, n := range notifs {
		if n.Type == core.NotifyExpenseAlert {
			found = true
		}
	}
	if !found {
		t.Fatalf("no budget alert in %+v", notifs)
	}

	status, err := e.budgets.Status(ctx, u.ID, mustBudgetID(t, e, u.ID, "food"), date)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Usage.Spent != 850 || !status.Usage.AlertTriggered {
		t.Fatalf("usage = %+v", status.Usage)
	}
}

func mustBudgetID(t *testing.T, e *testEnv, userID, category string) string {
	t.Helper()
	budgets, err := e.budgets.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list budgets: %v", err)
	}
	for _, b := range budgets {
		if b.Category == category {
			return b.ID
		}
	}
	t.Fatalf("no budget for category %s", category)
	return ""
}

func TestBudgetUpdateKeepsSingleActivePerCategory(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "jay@example.com")

	if _, err := e.budgets.Create(ctx, core.Budget{
		UserID: u.ID, Category: "food", MonthlyLimit: 1000, Active: true,
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	dup, err := e.budgets.Create(ctx, core.Budget{
		UserID: u.ID, Category: "food", MonthlyLimit: 500, Active: false,
	})
	if err != nil {
		t.Fatalf("create inactive duplicate: %v", err)
	}

	// Flipping the inactive duplicate to active would leave two active
	// budgets for the category.
	_, err = e.budgets.Update(ctx, u.ID, dup.ID, core.Budget{
		Category: "food", MonthlyLimit: 500, AlertThreshold: 80, Active: true,
	})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("activate duplicate: expected conflict, got %v", err)
	}

	// Moving it to a free category is fine.
	moved, err := e.budgets.Update(ctx, u.ID, dup.ID, core.Budget{
		Category: "travel", MonthlyLimit: 500, AlertThreshold: 80, Active: true,
	})
	if err != nil {
		t.Fatalf("move to free category: %v", err)
	}
	if moved.Category != "travel" || !moved.Active {
		t.Fatalf("moved budget = %+v", moved)
	}

	// The food alert path still resolves to the one original budget.
	status, err := e.budgets.Status(ctx, u.ID, mustBudgetID(t, e, u.ID, "food"), time.Now().UTC())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Budget.MonthlyLimit != 1000 {
		t.Fatalf("status budget = %+v", status.Budget)
	}
}

func TestExpenseCreateRejectsCommaTags(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "kim@example.com")
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := e.expenses.Create(ctx, core.Expense{
		UserID: u.ID, Title: "snacks", Category: "food", Amount: 100, Date: date,
		Tags: []string{"food, drink"},
	})
	if !errors.Is(err, core.ErrInvalidTag) {
		t.Fatalf("comma tag: expected ErrInvalidTag, got %v", err)
	}

	// Clean tags survive the round trip intact.
	created, err := e.expenses.Create(ctx, core.Expense{
		UserID: u.ID, Title: "snacks", Category: "food", Amount: 100, Date: date,
		Tags: []string{"food", "drink"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := e.expenses.Get(ctx, u.ID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "food" || got.Tags[1] != "drink" {
		t.Fatalf("tags = %v", got.Tags)
	}
}

func TestDashboardOverview(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "gina@example.com")
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	if _, err := e.income.Create(ctx, core.Income{
		UserID: u.ID, Title: "salary", IncomeType: "salary", Amount: 50000,
		Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create income: %v", err)
	}
	if _, err := e.expenses.Create(ctx, core.Expense{
		UserID: u.ID, Title: "rent", Category: "housing", Amount: 15000,
		Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	o, err := e.dashboard.Overview(ctx, u.ID, now)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if o.Income.MonthlyTotal != 50000 || o.Expenses.MonthlyTotal != 15000 {
		t.Fatalf("overview = %+v", o)
	}
	if o.Expenses.MonthlySavings != 35000 {
		t.Fatalf("savings = %v", o.Expenses.MonthlySavings)
	}
	if o.Health.Score < 0 || o.Health.Score > 100 {
		t.Fatalf("score = %d", o.Health.Score)
	}

	summary, err := e.dashboard.MonthlySummary(ctx, u.ID, now)
	if err != nil {
		t.Fatalf("monthly summary: %v", err)
	}
	if summary.Income != 50000 || summary.Expenses != 15000 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestReminderScan(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "hank@example.com")
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	mkDebt := func(name string, due time.Time) {
		t.Helper()
		if _, err := e.debts.Create(ctx, core.Debt{
			UserID: u.ID, Name: name, Principal: 10000, InterestRate: 10,
			TenureMonths: 12, StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			NextPaymentDate: due,
		}); err != nil {
			t.Fatalf("create debt %s: %v", name, err)
		}
	}
	mkDebt("due tomorrow", now.AddDate(0, 0, 1))
	mkDebt("due next month", now.AddDate(0, 1, 0))

	raised, err := e.reminders.Scan(ctx, now)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if raised != 1 {
		t.Fatalf("raised = %d", raised)
	}

	notifs, _ := e.notifications.List(ctx, u.ID, true)
	found := false
	for _, n := range notifs {
		if n.Type == core.NotifyPaymentDue {
			found = true
		}
	}
	if !found {
		t.Fatalf("no payment_due notification in %+v", notifs)
	}
}

func TestIncomeMonthlyStats(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.signUp(t, "iris@example.com")
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	add := func(title, incomeType string, amount float64, date time.Time) {
		t.Helper()
		if _, err := e.income.Create(ctx, core.Income{
			UserID: u.ID, Title: title, IncomeType: incomeType, Amount: amount, Date: date,
		}); err != nil {
			t.Fatalf("create income: %v", err)
		}
	}
	add("salary", "salary", 60000, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	add("gig", "freelance", 8000, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	add("old salary", "salary", 60000, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	stats, err := e.income.MonthlyStats(ctx, u.ID, ref)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 68000 || stats.RecordCount != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.ByType["salary"] != 60000 || stats.ByType["freelance"] != 8000 {
		t.Fatalf("by type = %v", stats.ByType)
	}
}
