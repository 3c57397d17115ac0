package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-planner/internal/config"
)

func firstType(t *testing.T, err error) ValidationErrorType {
	t.Helper()
	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	require.NotEmpty(t, ve.Errors)
	return ve.Errors[0].Type
}

func TestValidator_ValidateName(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid name", "Dentist", false, ""},
		{"Unicode and punctuation", "Café @ 9 (rebooked!)", false, ""},
		{"Empty name", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"At the limit", strings.Repeat("a", 100), false, ""},
		{"Too long", strings.Repeat("a", 101), true, ErrorTypeInvalidLength},
		{"Surrounding whitespace ignored", "  " + strings.Repeat("a", 100) + "  ", false, ""},
		{"Newline inside", "two\nlines", true, ErrorTypeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName("name", tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.errorType, firstType(t, err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ConfiguredNameLength(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.NameMaxLength = 5
	validator := NewValidatorWithConfig(cfg)

	assert.NoError(t, validator.ValidateName("name", "short"))
	assert.Error(t, validator.ValidateName("name", "longer"))
}

func TestValidator_ValidateIndex(t *testing.T) {
	validator := NewValidator()

	assert.NoError(t, validator.ValidateIndex("number", 0, 3))
	assert.NoError(t, validator.ValidateIndex("number", 2, 3))

	err := validator.ValidateIndex("number", 3, 3)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidRange, firstType(t, err))
	assert.Contains(t, err.Error(), "between 1 and 3")

	err = validator.ValidateIndex("number", -1, 3)
	assert.Error(t, err)

	err = validator.ValidateIndex("number", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the list is empty")
}

func TestValidator_ParseDateAndClock(t *testing.T) {
	validator := NewValidator()

	date, err := validator.ParseDate("date", "2024-06-12")
	require.NoError(t, err)
	clock, err := validator.ParseClock("start", " 14:05 ")
	require.NoError(t, err)

	combined := CombineDateClock(date, clock)
	assert.True(t, combined.Equal(time.Date(2024, time.June, 12, 14, 5, 0, 0, time.Local)))

	_, err = validator.ParseDate("date", "12/06/2024")
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidFormat, firstType(t, err))

	_, err = validator.ParseClock("start", "25:00")
	assert.Error(t, err)
}
