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
	FieldOperation  = "operation"
	FieldReceiptID  = "receipt_id"
	FieldCustomer   = "customer"
	FieldType       = "receipt_type"
	FieldStatus     = "receipt_status"
	FieldQty        = "qty"
	FieldVersion    = "version"
	FieldBackend    = "backend"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentRegister = "register"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSheets   = "sheets"
	ComponentInsight  = "insight"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpSetStatus = "set_status"
	OpSnapshot  = "snapshot"
	OpLoad      = "load"
	OpSave      = "save"
	OpSync      = "sync"
	OpGenerate  = "generate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
