package adapters

import "fmt"

// Adapter error codes.
const (
	CodePermissionDenied = "permissionDenied"
	CodeTimeout          = "timeout"
	CodeUnavailable      = "unavailable"
	CodePaymentDeclined  = "paymentDeclined"
	CodeDispatchFailed   = "dispatchFailed"
)

// AdapterError is a typed failure from a side-effect adapter. It is always
// recoverable by retry: the controller preserves the draft verbatim.
type AdapterError struct {
	Op      string // "location", "payment", "dispatch"
	Code    string
	Message string
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

// NewAdapterError builds an AdapterError.
func NewAdapterError(op, code, msg string) *AdapterError {
	return &AdapterError{Op: op, Code: code, Message: msg}
}
