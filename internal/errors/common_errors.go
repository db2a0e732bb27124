package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
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

// Helper functions for common error types

// NewMissingFileError reports an input path that does not exist.
func NewMissingFileError(path string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", path), cause).
		WithContext("path", path)
}

// NewSchemaError reports a column that is absent or has the wrong type.
func NewSchemaError(column, message string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("column %q: %s", column, message), nil).
		WithContext("column", column)
}

// NewDateParseError reports a Date cell that could not be parsed.
// Row is the zero-based data row index (header excluded).
func NewDateParseError(row int, raw string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, fmt.Sprintf("cannot parse date %q in row %d", raw, row), cause).
		WithContext("row", row).
		WithContext("value", raw)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsMissingFile reports whether err carries a missing input file.
func IsMissingFile(err error) bool {
	return TypeOf(err) == ErrTypeNotFound
}

// IsSchemaError reports whether err carries a schema mismatch.
func IsSchemaError(err error) bool {
	return TypeOf(err) == ErrTypeSchema
}

// IsDateParseError reports whether err carries an unparseable date.
func IsDateParseError(err error) bool {
	return TypeOf(err) == ErrTypeParsing
}
