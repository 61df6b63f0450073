package logging

// Standardized field names for structured logging.
const (
	FieldComponent     = "component"
	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldType          = "type"
	FieldOperation     = "operation"
	FieldCount         = "count"
	FieldKind          = "kind"
	FieldOutputFile    = "output_file"
	FieldRange         = "date_range"
	FieldBytes         = "bytes"
)
