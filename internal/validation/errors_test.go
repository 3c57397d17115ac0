package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "due", Message: "is required"},
		}, "multiple validation errors: validation error for field 'name': is required; validation error for field 'due': is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			assert.Equal(t, tt.expected, ve.Error())
		})
	}
}

func TestValidationError_OrNil(t *testing.T) {
	ve := NewValidationError()
	assert.NoError(t, ve.OrNil())

	ve.AddRequiredError("name")
	assert.Same(t, ve, ve.OrNil())
}

func TestValidationError_Merge(t *testing.T) {
	first := NewValidationError()
	first.AddRequiredError("name")
	second := NewValidationError()
	second.AddRequiredError("due")

	first.Merge(second)
	first.Merge(nil)
	first.Merge(fmt.Errorf("other"))

	assert.Len(t, first.Errors, 2)
	assert.Len(t, first.GetFieldErrors("due"), 1)
	assert.Empty(t, first.GetFieldErrors("time"))
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("adding task: %w", ve)))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}

func TestAddErrorHelpers(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")
	ve.AddInvalidFormatError("date", "tomorrow", "2006-01-02")
	ve.AddInvalidLengthError("name", "xxxx", 3)
	ve.AddInvalidValueError("hours", -1, "must not be negative")
	ve.AddInvalidRangeError("number", 9, "must be between 1 and 3")

	want := []struct {
		typ     ValidationErrorType
		message string
	}{
		{ErrorTypeRequired, "name is required"},
		{ErrorTypeInvalidFormat, "date has invalid format, expected: 2006-01-02"},
		{ErrorTypeInvalidLength, "name must be at most 3 characters long"},
		{ErrorTypeInvalidValue, "hours has invalid value: must not be negative"},
		{ErrorTypeInvalidRange, "number is out of range: must be between 1 and 3"},
	}
	assert.Len(t, ve.Errors, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, ve.Errors[i].Type)
		assert.Equal(t, w.message, ve.Errors[i].Message)
	}
}

func TestGetUserFriendlyMessage(t *testing.T) {
	assert.Equal(t, "Input validation failed", NewValidationError().GetUserFriendlyMessage())

	single := NewValidationError()
	single.AddRequiredError("name")
	assert.Equal(t, "name is required", single.GetUserFriendlyMessage())

	multi := NewValidationError()
	multi.AddRequiredError("name")
	multi.AddRequiredError("time")
	assert.Equal(t, "Multiple validation errors occurred:\n- name is required\n- time is required", multi.GetUserFriendlyMessage())
}
