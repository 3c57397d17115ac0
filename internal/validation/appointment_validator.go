package validation

import (
	"strconv"

	"life-planner/internal/domain"
)

// AppointmentValidator decides whether an appointment may enter a schedule
type AppointmentValidator struct {
	validator *Validator
}

// NewAppointmentValidator creates a new appointment validator
func NewAppointmentValidator(v *Validator) *AppointmentValidator {
	return &AppointmentValidator{validator: v}
}

// ValidateDuration checks hours and minutes entered for an appointment
func (av *AppointmentValidator) ValidateDuration(hours, minutes int) error {
	validationError := NewValidationError()
	if hours < 0 {
		validationError.AddInvalidValueError("hours", hours, "must not be negative")
	}
	if minutes < 0 {
		validationError.AddInvalidValueError("minutes", minutes, "must not be negative")
	}
	maxHours := av.validator.config.Validation.MaxAppointmentHours
	if hours >= 0 && minutes >= 0 && hours*60+minutes > maxHours*60 {
		validationError.AddInvalidRangeError("duration", hours*60+minutes, "must be at most "+strconv.Itoa(maxHours)+" hours")
	}
	return validationError.OrNil()
}

// ValidateAppointment rejects drafts and appointments with unusable fields
func (av *AppointmentValidator) ValidateAppointment(appointment *domain.Appointment) error {
	validationError := NewValidationError()

	validationError.Merge(av.validator.ValidateName("name", appointment.Name))

	period, ok := appointment.Period()
	if !ok {
		validationError.AddRequiredError("time")
	} else {
		validationError.Merge(av.ValidateDuration(period.Hours(), period.Minutes()))
	}

	return validationError.OrNil()
}
