package apperrors

// Error kinds reported to clients in error responses.
const (
	KindDeserialization     = "DeserializationError"
	KindInvalidParameter    = "InvalidParameter"
	KindRequestTooLarge     = "RequestTooLarge"
	KindConstraintViolation = "ConstraintViolation"
	KindConnection          = "ConnectionError"
	KindStorage             = "StorageError"
	KindInternal            = "InternalError"
)
