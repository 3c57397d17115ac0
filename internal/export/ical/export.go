// Package ical renders planner schedules as an iCalendar document so they can
// be imported into other calendar applications.
package ical

import (
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"life-planner/internal/domain"
	"life-planner/internal/errors"
)

// ProductID identifies the planner as the producer of exported calendars.
const ProductID = "-//life-planner//lp//EN"

const utcLayout = "20060102T150405Z"

// uidNamespace scopes the name-based UUIDs so that exporting the same item
// twice yields the same UID and calendar clients update instead of duplicate.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:life-planner"))

// Exporter converts appointments to VEVENTs and tasks to VTODOs.
type Exporter struct {
	now domain.Clock
}

// NewExporter creates an exporter stamping components with now().
func NewExporter(now domain.Clock) *Exporter {
	return &Exporter{now: now}
}

// Calendar builds the calendar. Draft entities are skipped.
func (e *Exporter) Calendar(appointments []*domain.Appointment, tasks []*domain.Task) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)
	stamp := e.now().UTC()
	seen := make(map[string]int)
	occurrence := func(base string) int {
		n := seen[base]
		seen[base]++
		return n
	}

	for _, a := range appointments {
		period, ok := a.Period()
		if !ok {
			continue
		}
		event := cal.AddEvent(AppointmentUID(a, occurrence(AppointmentUID(a, 0))))
		event.SetDtStampTime(stamp)
		event.SetStartAt(period.Start())
		event.SetEndAt(period.End())
		event.SetSummary(a.Name)
		if a.Description != "" {
			event.SetDescription(a.Description)
		}
	}

	for _, t := range tasks {
		due, ok := t.Due()
		if !ok {
			continue
		}
		todo := cal.AddTodo(TaskUID(t, occurrence(TaskUID(t, 0))))
		todo.SetProperty(ics.ComponentPropertyDtstamp, stamp.Format(utcLayout))
		todo.SetProperty(ics.ComponentPropertySummary, t.Name)
		if t.Description != "" {
			todo.SetProperty(ics.ComponentPropertyDescription, t.Description)
		}
		todo.SetProperty(ics.ComponentPropertyDue, due.UTC().Format(utcLayout))
		if t.IsComplete() {
			todo.SetProperty(ics.ComponentPropertyStatus, "COMPLETED")
		} else {
			todo.SetProperty(ics.ComponentPropertyStatus, "NEEDS-ACTION")
		}
	}

	return cal
}

// Write serializes the calendar for the given items to w.
func (e *Exporter) Write(w io.Writer, appointments []*domain.Appointment, tasks []*domain.Task) error {
	if err := e.Calendar(appointments, tasks).SerializeTo(w); err != nil {
		return errors.NewStorageError("write calendar", err)
	}
	return nil
}

// AppointmentUID derives a stable UID from the appointment's name and start.
// occurrence counts earlier appointments in the same export with the same
// name and start, so that each of them gets its own UID.
func AppointmentUID(a *domain.Appointment, occurrence int) string {
	return uid("appointment", a.Name, a.Start(), occurrence)
}

// TaskUID derives a stable UID from the task's name and due time.
// occurrence works as for AppointmentUID.
func TaskUID(t *domain.Task, occurrence int) string {
	due, _ := t.Due()
	return uid("task", t.Name, due, occurrence)
}

func uid(kind, name string, at time.Time, occurrence int) string {
	key := kind + "\x00" + name + "\x00" + strconv.FormatInt(at.UnixMilli(), 10)
	if occurrence > 0 {
		key += "\x00" + strconv.Itoa(occurrence)
	}
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@life-planner"
}
