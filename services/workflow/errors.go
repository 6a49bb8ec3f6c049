package workflow

import (
	"errors"
	"fmt"
)

// Validation error codes.
const (
	CodeEmptyRequiredField  = "emptyRequiredField"
	CodeOutOfRange          = "outOfRange"
	CodeCrossFieldViolation = "crossFieldViolation"
)

// ValidationError reports a rejected field mutation or a blocked step
// transition. It is recoverable: the draft that produced it is unchanged.
type ValidationError struct {
	Code    string
	Field   string
	Message string
	Missing []string // populated when a step transition is blocked
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// InvariantViolation marks a programming or data-integrity fault, such as an
// unrecognized urgency level reaching the artifact builder. It is the only
// error class allowed to abort a workflow outright.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

var (
	// ErrSubmissionInFlight is returned when a second submission is attempted
	// while an adapter call is still outstanding.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrWorkflowDisposed is returned by any operation on a cancelled
	// (torn-down) controller.
	ErrWorkflowDisposed = errors.New("workflow has been cancelled")

	// ErrWorkflowConfirmed is returned when mutating a completed workflow.
	ErrWorkflowConfirmed = errors.New("workflow already confirmed")

	// ErrSessionNotFound is returned when a session ID is unknown or expired.
	ErrSessionNotFound = errors.New("booking session not found or expired")

	// ErrUnknownKind is returned for a workflow kind outside the registry.
	ErrUnknownKind = errors.New("unknown workflow kind")

	// ErrUnknownStep is returned by JumpTo for a step not in the applicable
	// sequence.
	ErrUnknownStep = errors.New("step not in applicable sequence")

	// ErrAtFinalStep is returned by Advance on the terminal step; the
	// terminal action is Submit.
	ErrAtFinalStep = errors.New("already at the final step")

	// ErrLookupInFlight is returned when a location lookup is requested
	// while one is still outstanding.
	ErrLookupInFlight = errors.New("location lookup already in flight")
)
