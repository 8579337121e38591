package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserEmail   = "user_email"
	FieldTxID        = "transaction_id"
	FieldGoalID      = "goal_id"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentFinance = "finance"
	ComponentStore   = "store"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpRegister = "register"
	OpAdvice   = "advice"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
