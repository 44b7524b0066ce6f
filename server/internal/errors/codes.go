package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for scheduler operations.
type ErrorCode string

const (
	// ErrCodeCardNotFound indicates the reviewed card does not exist or is not
	// owned by the requesting member.
	ErrCodeCardNotFound ErrorCode = "CARD_NOT_FOUND"
	// ErrCodeMemberNotFound indicates the learner identity does not resolve.
	ErrCodeMemberNotFound ErrorCode = "MEMBER_NOT_FOUND"
	// ErrCodeUnrecognizedOutcome indicates a review outcome label outside the
	// known synonym table.
	ErrCodeUnrecognizedOutcome ErrorCode = "UNRECOGNIZED_OUTCOME"
	// ErrCodeConcurrentModification indicates an optimistic-lock conflict on a
	// review record update.
	ErrCodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInternal indicates an unexpected store or infrastructure failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// SchedulerError represents a structured error for scheduler operations.
type SchedulerError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchedulerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *SchedulerError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *SchedulerError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// CardNotFound creates a card not found error.
func CardNotFound(cardID int32) *SchedulerError {
	return &SchedulerError{
		Code:    ErrCodeCardNotFound,
		Message: fmt.Sprintf("card %d not found", cardID),
	}
}

// MemberNotFound creates a member not found error.
func MemberNotFound(memberID int32) *SchedulerError {
	return &SchedulerError{
		Code:    ErrCodeMemberNotFound,
		Message: fmt.Sprintf("member %d not found", memberID),
	}
}

// UnrecognizedOutcome creates an unrecognized outcome error.
func UnrecognizedOutcome(label string) *SchedulerError {
	return &SchedulerError{
		Code:    ErrCodeUnrecognizedOutcome,
		Message: fmt.Sprintf("unrecognized review outcome %q", label),
	}
}

// ConcurrentModification creates an optimistic-lock conflict error.
func ConcurrentModification(memberID, cardID int32) *SchedulerError {
	return &SchedulerError{
		Code:    ErrCodeConcurrentModification,
		Message: fmt.Sprintf("review record for member %d card %d was modified concurrently", memberID, cardID),
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *SchedulerError {
	return &SchedulerError{Code: ErrCodeInvalidArgument, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, cause error) *SchedulerError {
	return &SchedulerError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *SchedulerError {
	return &SchedulerError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if schedErr, ok := err.(*SchedulerError); ok {
		return schedErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a SchedulerError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if schedErr, ok := err.(*SchedulerError); ok {
		return schedErr.Code
	}
	return defaultCode
}
