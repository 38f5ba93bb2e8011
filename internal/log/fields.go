package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldUser        = "user"
	FieldCommand     = "command"
	FieldTxID        = "tx_id"
	FieldTxType      = "tx_type"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldChannelID   = "channel_id"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldRowRef      = "row_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentBot       = "bot"
	ComponentStorage   = "storage"
	ComponentReport    = "report"
	ComponentScheduler = "scheduler"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
)
