package validation

import (
	"life-planner/internal/domain"
)

// TaskValidator decides whether a task may enter a schedule
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateTask rejects drafts and tasks with unusable fields
func (tv *TaskValidator) ValidateTask(task *domain.Task) error {
	validationError := NewValidationError()

	validationError.Merge(tv.validator.ValidateName("name", task.Name))

	if _, ok := task.Due(); !ok {
		validationError.AddRequiredError("due")
	}

	return validationError.OrNil()
}
