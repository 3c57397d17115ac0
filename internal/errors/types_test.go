package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_NamesAndCodes(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		name      string
		code      string
	}{
		{ErrorTypeValidation, "validation", "VALIDATION_FAILED"},
		{ErrorTypeNotFound, "not_found", "NOT_FOUND"},
		{ErrorTypeStorage, "storage", "STORAGE_ERROR"},
		{ErrorTypeInvalidInput, "invalid_input", "INVALID_INPUT"},
		{ErrorTypeMalformedData, "malformed_data", "MALFORMED_DATA"},
		{ErrorTypeTimeout, "timeout", "TIMEOUT"},
		{ErrorType(999), "unknown", "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.errorType.String())
			assert.Equal(t, tt.code, tt.errorType.Code())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "name is required"}
	assert.EqualError(t, plain, "validation: name is required")

	wrapped := &AppError{Type: ErrorTypeStorage, Message: "save failed", Cause: errors.New("disk full")}
	assert.EqualError(t, wrapped, "storage: save failed (caused by: disk full)")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewMalformedDataError("saved schedule", "invalid JSON", cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, NewNotFoundError("task", "3").Unwrap())
}

func TestAppError_WithEntity(t *testing.T) {
	err := NewValidationError("appointment Dentist has no period", nil)

	assert.Same(t, err, err.WithEntity("appointment"))
	assert.Equal(t, "appointment", err.Entity)
	assert.Equal(t, "VALIDATION_FAILED", err.Code())
}
