package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Timestamp resolution errors
	ErrNoTimestamp ErrorCode = "NO_TIMESTAMP"

	// Ledger errors
	ErrCorruptLedger  ErrorCode = "CORRUPT_LEDGER"
	ErrLedgerConflict ErrorCode = "LEDGER_CONFLICT"

	// Migration errors
	ErrTargetExists       ErrorCode = "TARGET_EXISTS"
	ErrAmbiguousDuplicate ErrorCode = "AMBIGUOUS_DUPLICATE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileMove   ErrorCode = "FILE_MOVE"
	ErrFileDelete ErrorCode = "FILE_DELETE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// PicsortError represents a structured error with code and details
type PicsortError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PicsortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PicsortError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PicsortError) Is(target error) bool {
	var targetErr *PicsortError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PicsortError with the given code and message
func New(code ErrorCode, message string) *PicsortError {
	return &PicsortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PicsortError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PicsortError {
	return &PicsortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PicsortError
func Wrap(err error, code ErrorCode, message string) *PicsortError {
	if err == nil {
		return nil
	}
	return &PicsortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PicsortError {
	if err == nil {
		return nil
	}
	return &PicsortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PicsortError) WithDetail(key string, value interface{}) *PicsortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PicsortError) WithDetails(details map[string]interface{}) *PicsortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PicsortError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PicsortError
func GetErrorCode(err error) ErrorCode {
	var perr *PicsortError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PicsortError
func GetErrorDetails(err error) map[string]interface{} {
	var perr *PicsortError
	if errors.As(err, &perr) {
		return perr.Details
	}
	return nil
}
