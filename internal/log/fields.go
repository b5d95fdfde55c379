package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldDebtID     = "debt_id"
	FieldGoalID     = "goal_id"
	FieldBudgetID   = "budget_id"
	FieldPaymentID  = "payment_id"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldEmail      = "email"
)

// Components defines standard component names
const (
	ComponentApp      = "clerro"
	ComponentHTTP     = "http"
	ComponentAuth     = "auth"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentNotify   = "notify"
	ComponentReminder = "reminder"
)
