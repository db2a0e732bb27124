package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "schema error type", errType: ErrTypeSchema, expected: "SCHEMA"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeSchema,
				Message: `column "Amount": not found`,
			},
			wantMessage: `[SCHEMA] column "Amount": not found`,
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "Failed to write chart",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] Failed to write chart: disk full",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := &AppError{Type: ErrTypeParsing, Message: "bad date"}

	result := appErr.
		WithContext("row", 4).
		WithContext("value", "31/31/2022").
		WithContext("row", 5)

	assert.Same(t, appErr, result)
	assert.Equal(t, 5, result.Context["row"])
	assert.Equal(t, "31/31/2022", result.Context["value"])
}

func TestNewMissingFileError(t *testing.T) {
	cause := os.ErrNotExist
	err := NewMissingFileError("Store_data_analysis.xlsx", cause)

	assert.Equal(t, ErrTypeNotFound, err.Type)
	assert.Equal(t, "Store_data_analysis.xlsx not found", err.Message)
	assert.Equal(t, "Store_data_analysis.xlsx", err.Context["path"])
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, IsMissingFile(err))
	assert.False(t, IsSchemaError(err))
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("Gender", "not found")

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Equal(t, `column "Gender": not found`, err.Message)
	assert.Equal(t, "Gender", err.Context["column"])
	assert.True(t, IsSchemaError(err))
	assert.Nil(t, err.Unwrap())
}

func TestNewDateParseError(t *testing.T) {
	cause := errors.New("no layout matched")
	err := NewDateParseError(7, "yesterday", cause)

	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Equal(t, `[PARSING] cannot parse date "yesterday" in row 7: no layout matched`, err.Error())
	assert.Equal(t, 7, err.Context["row"])
	assert.Equal(t, "yesterday", err.Context["value"])
	assert.True(t, IsDateParseError(err))
	assert.True(t, errors.Is(err, cause))
}

func TestHelperConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		got      *AppError
		wantType ErrorType
		wantErr  error
	}{
		{name: "parsing", got: NewParsingError("parse failed", cause), wantType: ErrTypeParsing, wantErr: cause},
		{name: "storage", got: NewStorageError("write failed", cause), wantType: ErrTypeStorage, wantErr: cause},
		{name: "validation", got: NewAppValidationError("invalid"), wantType: ErrTypeValidation},
		{name: "config", got: NewConfigError("bad config", cause), wantType: ErrTypeConfig, wantErr: cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.got.Type)
			assert.Equal(t, tt.wantErr, tt.got.Cause)
			assert.NotNil(t, tt.got.Context)
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "plain error", err: errors.New("plain"), want: ""},
		{name: "direct app error", err: NewSchemaError("Age", "not numeric"), want: ErrTypeSchema},
		{name: "wrapped app error", err: fmt.Errorf("step clean: %w", NewMissingFileError("x.xlsx", nil)), want: ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestAppError_ErrorsIntegration(t *testing.T) {
	rootErr := fmt.Errorf("root cause")
	storageErr := NewStorageError("chart write failed", rootErr)
	wrapped := fmt.Errorf("report: %w", storageErr)

	assert.True(t, errors.Is(wrapped, rootErr))
	assert.True(t, errors.Is(wrapped, storageErr))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}
