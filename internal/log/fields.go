package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldAmountCents   = "amount_cents"
	FieldLimitCents    = "limit_cents"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldBackend       = "backend"
	FieldPath          = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentFinance = "finance"
	ComponentStorage = "storage"
	ComponentExport  = "export"
	ComponentBackend = "backend"
	ComponentUI      = "ui"
)
