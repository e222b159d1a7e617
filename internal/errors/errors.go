package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes. The analysis codes mirror the pipeline's failure
// taxonomy: missing required columns and invalid bucket partitions surface
// loudly, empty tables abort a batch, and a non-positive comparison baseline
// is a data-quality failure rather than a computable result.
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeIOError              = "IO_ERROR"
	CodeMissingColumn        = "MISSING_COLUMN"
	CodeEmptyTable           = "EMPTY_TABLE"
	CodeDivisionByZeroMetric = "DIVISION_BY_ZERO_METRIC"
	CodeInvalidPartition     = "INVALID_PARTITION"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func IOError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeIOError,
		Message: message,
		Cause:   cause,
	}
}

// MissingColumn reports that an operation's required column is absent
func MissingColumn(operation, column string) *AppError {
	return New(CodeMissingColumn, fmt.Sprintf("%s: required column %q is not present", operation, column))
}

// EmptyTable reports that a stage received a table with no rows
func EmptyTable(operation string) *AppError {
	return New(CodeEmptyTable, fmt.Sprintf("%s: table has no rows", operation))
}

// DivisionByZeroMetric reports a comparison against a non-positive baseline
func DivisionByZeroMetric(metricName string, baseline float64) *AppError {
	return New(CodeDivisionByZeroMetric,
		fmt.Sprintf("metric %q: baseline %g is not positive, percentage improvement is undefined", metricName, baseline))
}

// InvalidPartition reports a value that falls outside every declared bucket
func InvalidPartition(column string, value float64) *AppError {
	return New(CodeInvalidPartition,
		fmt.Sprintf("column %q: value %g falls outside all declared bucket boundaries", column, value))
}
