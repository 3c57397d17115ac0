package errors

import (
	"errors"
	"fmt"
	"time"
)

// NewValidationError reports an item or argument rejected before it reached
// the schedule.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewNotFoundError reports a lookup by reference that matched nothing.
func NewNotFoundError(entity, ref string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, ref),
		Entity:  entity,
	}
}

// NewStorageError reports a failed load or save of the saved schedule.
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: "storage operation failed: " + operation,
		Cause:   cause,
	}
}

// NewInvalidInputError reports a well-formed argument that the planner
// cannot accept, such as a duplicate tracker name.
func NewInvalidInputError(field, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
	}
}

// NewMalformedDataError reports persisted data that cannot be decoded.
func NewMalformedDataError(entity, reason string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedData,
		Message: fmt.Sprintf("malformed %s: %s", entity, reason),
		Entity:  entity,
		Cause:   cause,
	}
}

// NewTimeoutError reports an operation cut short by its deadline.
func NewTimeoutError(operation string, after time.Duration) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("%s timed out after %s", operation, after),
	}
}

// WrapError classifies err, keeping it as the cause.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{Type: errorType, Message: message, Cause: err}
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of errorType.
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errorType
}

// GetUserMessage returns the text shown to the user for err.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return appErr.Message
	case ErrorTypeMalformedData:
		return appErr.Message + ". The saved schedule was not loaded."
	case ErrorTypeStorage:
		return "Unable to read or write the saved schedule. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	}
	return "An unexpected error occurred. Please try again."
}

// GetErrorCode returns the code logged for err.
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code()
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system failure rather than a
// mistake in the user's input.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	}
	return true
}
