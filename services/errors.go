package services

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes surfaced to the API layer. Validation
// and entity-existence failures happen before any mutation; slot and version
// conflicts are expected, recoverable outcomes of concurrent writers.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInvalidTimeRange    = "INVALID_TIME_RANGE"
	CodeInvalidDateRange    = "INVALID_DATE_RANGE"
	CodeSlotConflict        = "SLOT_CONFLICT"
	CodeConflictsExist      = "CONFLICTS_EXIST"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeDatabaseError       = "DATABASE_ERROR"
)

// CodedError pairs a stable code with a human message
type CodedError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCodedError builds a CodedError with a formatted message
func NewCodedError(code, format string, args ...interface{}) *CodedError {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the stable code from an error chain, defaulting to
// DATABASE_ERROR for untyped failures (detail stays server-side)
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeDatabaseError
}

// IsCode checks whether the error chain carries the given code
func IsCode(err error, code string) bool {
	var coded *CodedError
	return errors.As(err, &coded) && coded.Code == code
}
