package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInput  ErrorType = "INPUT"
	ErrTypeSchema ErrorType = "SCHEMA"
	ErrTypeParse  ErrorType = "PARSE"
	ErrTypeOutput ErrorType = "OUTPUT"
	ErrTypeConfig ErrorType = "CONFIG"
)

// Sentinel causes. Match them with errors.Is through an AppError chain.
var (
	ErrFileNotFound       = stderrors.New("file not found")
	ErrUnreadableWorkbook = stderrors.New("unreadable workbook")
	ErrSheetNotFound      = stderrors.New("sheet not found")
	ErrMissingColumn      = stderrors.New("missing column")
	ErrNoAmounts          = stderrors.New("no monetary amounts in annotation")
)

// Exit statuses returned by the command line tool.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitOutputFailed = 2
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInputError reports a missing or unreadable workbook, or an unselectable sheet.
func NewInputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInput, message, cause)
}

// NewSchemaError reports a sheet whose header row lacks a required column.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewParseWarning reports an annotation that could not be read into amounts.
// It never aborts a run.
func NewParseWarning(message string, cause error) *AppError {
	return NewAppError(ErrTypeParse, message, cause)
}

// NewOutputError reports a report artifact that could not be written.
func NewOutputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeOutput, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err, or any error it wraps, is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// ExitCode maps an error returned by a run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsType(err, ErrTypeOutput):
		return ExitOutputFailed
	default:
		return ExitFailure
	}
}
