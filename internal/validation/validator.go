package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"life-planner/internal/config"
	"life-planner/internal/domain"
)

// Validator provides the checks the planner applies to user input before it
// reaches the domain types
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using default limits
func NewValidator() *Validator {
	return &Validator{config: config.NewConfig()}
}

// NewValidatorWithConfig creates a validator using the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidNameLength checks a trimmed name against the configured maximum
func (v *Validator) IsValidNameLength(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) <= v.config.Validation.NameMaxLength
}

// HasControlCharacters reports whether s contains newlines, tabs or other
// control characters, which would break the one-line listings
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// ValidateName checks a display name for an appointment, task or tracker
func (v *Validator) ValidateName(field, name string) error {
	validationError := NewValidationError()
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		validationError.AddRequiredError(field)
		return validationError
	}
	if !v.IsValidNameLength(trimmed) {
		validationError.AddInvalidLengthError(field, trimmed, v.config.Validation.NameMaxLength)
	}
	if v.HasControlCharacters(trimmed) {
		validationError.AddInvalidValueError(field, trimmed, "must not contain control characters")
	}

	return validationError.OrNil()
}

// ValidateIndex checks that index addresses one of length items
func (v *Validator) ValidateIndex(field string, index, length int) error {
	if index >= 0 && index < length {
		return nil
	}
	validationError := NewValidationError()
	if length == 0 {
		validationError.AddInvalidRangeError(field, index+1, "the list is empty")
	} else {
		validationError.AddInvalidRangeError(field, index+1, "must be between 1 and "+strconv.Itoa(length))
	}
	return validationError
}

// ParseDate parses a calendar date in the configured input layout
func (v *Validator) ParseDate(field, value string) (time.Time, error) {
	return v.parse(field, value, v.config.Time.DateInput)
}

// ParseClock parses a time of day in the configured input layout
func (v *Validator) ParseClock(field, value string) (time.Time, error) {
	return v.parse(field, value, v.config.Time.ClockInput)
}

func (v *Validator) parse(field, value, layout string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), time.Local)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError(field, value, layout)
		return time.Time{}, validationError
	}
	return t, nil
}

// CombineDateClock builds a local wall-clock instant from a parsed date and
// a parsed time of day
func CombineDateClock(date, clock time.Time) time.Time {
	return domain.Normalize(time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local))
}
