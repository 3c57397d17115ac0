package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"life-planner/internal/config"
	"life-planner/internal/errors"
	"life-planner/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct {
	log zerolog.Logger
}

// NewErrorHandler creates a new error handler. System errors are logged
// to logger before being turned into a user message.
func NewErrorHandler(logger zerolog.Logger) *ErrorHandler {
	return &ErrorHandler{log: logger}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	eh.logIfNeeded(operation, err)
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	eh.logIfNeeded("", err)
	return fmt.Errorf("%s", eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	// Field-level details are more useful than the wrapping AppError message
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	var configErr *config.ConfigError
	if stderrors.As(err, &configErr) {
		return configErr.Error()
	}

	return errors.GetUserMessage(err)
}

func (eh *ErrorHandler) logIfNeeded(operation string, err error) {
	if !errors.ShouldLogError(err) || eh.IsValidationError(err) {
		return
	}
	event := eh.log.Error().
		Err(err).
		Str("operation", operation).
		Str("code", errors.GetErrorCode(err))
	if appErr, ok := errors.AsAppError(err); ok && appErr.Entity != "" {
		event = event.Str("entity", appErr.Entity)
	}
	event.Msg("command failed")
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsStorageError checks if an error is a storage error
func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeStorage)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
