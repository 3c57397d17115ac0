// Package errors classifies the failures the planner reports to its
// callers. Commands turn an AppError into a user message by its Type.
package errors

// ErrorType is the category of an AppError.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStorage
	ErrorTypeInvalidInput
	ErrorTypeMalformedData
	ErrorTypeTimeout
)

var typeNames = map[ErrorType]struct{ name, code string }{
	ErrorTypeValidation:    {"validation", "VALIDATION_FAILED"},
	ErrorTypeNotFound:      {"not_found", "NOT_FOUND"},
	ErrorTypeStorage:       {"storage", "STORAGE_ERROR"},
	ErrorTypeInvalidInput:  {"invalid_input", "INVALID_INPUT"},
	ErrorTypeMalformedData: {"malformed_data", "MALFORMED_DATA"},
	ErrorTypeTimeout:       {"timeout", "TIMEOUT"},
}

func (et ErrorType) String() string {
	if n, ok := typeNames[et]; ok {
		return n.name
	}
	return "unknown"
}

// Code is the stable identifier logged with errors of this type.
func (et ErrorType) Code() string {
	if n, ok := typeNames[et]; ok {
		return n.code
	}
	return "UNKNOWN_ERROR"
}

// AppError is a classified planner failure. Entity names the kind of item
// involved (appointment, task, habit tracker) when one is known.
type AppError struct {
	Type    ErrorType
	Message string
	Entity  string
	Cause   error
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause != nil {
		msg += " (caused by: " + e.Cause.Error() + ")"
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Code returns the code of the error's type.
func (e *AppError) Code() string {
	return e.Type.Code()
}

// WithEntity records the kind of item the error is about.
func (e *AppError) WithEntity(entity string) *AppError {
	e.Entity = entity
	return e
}
