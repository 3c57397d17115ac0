package domain

import (
	"encoding/json"
	"time"
)

// Appointment is a named event occupying an interval of time.
// An appointment without a period is a draft and must not be scheduled.
type Appointment struct {
	Name        string
	Description string
	period      *Interval
}

// NewAppointment creates an appointment starting at start and lasting the
// given hours and minutes.
func NewAppointment(name, description string, start time.Time, hours, minutes int) *Appointment {
	period := NewInterval(start, hours, minutes)
	return &Appointment{
		Name:        name,
		Description: description,
		period:      &period,
	}
}

// NewDraftAppointment creates an empty appointment for interactive editing.
func NewDraftAppointment() *Appointment {
	return &Appointment{}
}

// Period returns the appointment's interval and whether it is set.
func (a *Appointment) Period() (Interval, bool) {
	if a.period == nil {
		return Interval{}, false
	}
	return *a.period, true
}

// SetPeriod stores a copy of the given interval.
func (a *Appointment) SetPeriod(period Interval) {
	p := period.Clone()
	a.period = &p
}

// ClearPeriod turns the appointment back into a draft.
func (a *Appointment) ClearPeriod() {
	a.period = nil
}

// IsDraft returns true while the appointment has no period.
func (a *Appointment) IsDraft() bool {
	return a.period == nil
}

// Start returns the start of the period, or the zero time for a draft.
func (a *Appointment) Start() time.Time {
	if a.period == nil {
		return time.Time{}
	}
	return a.period.Start()
}

// End returns the end of the period, or the zero time for a draft.
func (a *Appointment) End() time.Time {
	if a.period == nil {
		return time.Time{}
	}
	return a.period.End()
}

// IsToday returns true if the appointment starts on the calendar day of now.
func (a *Appointment) IsToday(now time.Time) bool {
	return isToday(now, a.Start(), a.period != nil)
}

// Compare orders appointments by start time.
func (a *Appointment) Compare(other *Appointment) int {
	return compareInstants(a.Start(), other.Start())
}

// Clone returns a deep copy of the appointment.
func (a *Appointment) Clone() *Appointment {
	clone := &Appointment{
		Name:        a.Name,
		Description: a.Description,
	}
	if a.period != nil {
		clone.SetPeriod(*a.period)
	}
	return clone
}

type appointmentRecord struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *int64  `json:"date"`
	Hours       *int    `json:"hours"`
	Minutes     *int    `json:"minutes"`
}

// MarshalJSON encodes the appointment in the saved schedule format.
func (a *Appointment) MarshalJSON() ([]byte, error) {
	period, ok := a.Period()
	if !ok {
		return nil, errDraft("appointment", a.Name, "period")
	}
	date := period.Start().UnixMilli()
	hours, minutes := period.Hours(), period.Minutes()
	return json.Marshal(appointmentRecord{
		Name:        &a.Name,
		Description: &a.Description,
		Date:        &date,
		Hours:       &hours,
		Minutes:     &minutes,
	})
}

// UnmarshalJSON decodes an appointment from the saved schedule format. The
// period is rebuilt from its start and duration, never from a stored end.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	var rec appointmentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return malformed("appointment", err)
	}
	if err := requireFields("appointment",
		field{"name", rec.Name != nil},
		field{"description", rec.Description != nil},
		field{"date", rec.Date != nil},
		field{"hours", rec.Hours != nil},
		field{"minutes", rec.Minutes != nil},
	); err != nil {
		return err
	}
	*a = *NewAppointment(*rec.Name, *rec.Description, time.UnixMilli(*rec.Date), *rec.Hours, *rec.Minutes)
	return nil
}
