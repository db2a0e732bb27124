package operations

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storeinsight/internal/errors"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without step",
			err:  &OperationError{Type: ErrorTypeNotFound, Message: "no steps registered"},
			want: "[not_found] no steps registered",
		},
		{
			name: "with step",
			err:  NewValidationError("load", "input missing"),
			want: "[validation] load: input missing",
		},
		{
			name: "with cause",
			err:  NewExecutionError("clean", errors.New("boom")),
			want: "[execution] clean: Step execution failed: boom",
		},
		{
			name: "nil",
			err:  nil,
			want: "unknown operation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "load", "failed"))

	schemaErr := apperrors.NewSchemaError("Gender", "not found")
	wrapped := WrapError(fmt.Errorf("clean: %w", schemaErr), "clean", "Step execution failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeExecution, wrapped.Type)
	assert.Equal(t, "clean", wrapped.Step)
	assert.True(t, apperrors.IsSchemaError(wrapped))

	existing := NewInvalidStateError("", "no data loaded")
	again := WrapError(existing, "features", "ignored")
	assert.Same(t, existing, again)
	assert.Equal(t, "features", again.Step)
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorType(""), GetErrorType(nil))
	assert.Equal(t, ErrorTypeExecution, GetErrorType(errors.New("plain")))
	assert.Equal(t, ErrorTypeInvalidState, GetErrorType(fmt.Errorf("x: %w", NewInvalidStateError("clean", "no data"))))
	assert.Equal(t, ErrorTypeNotFound, GetErrorType(ErrOperationNotFound))
}
