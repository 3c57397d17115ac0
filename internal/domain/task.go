package domain

import (
	"encoding/json"
	"time"
)

// Task is a named deadline that can be completed.
// A task without a due time is a draft and must not be scheduled.
type Task struct {
	Name        string
	Description string
	due         *time.Time
	complete    bool
}

// NewTask creates an incomplete task due at the given time.
func NewTask(name, description string, due time.Time) *Task {
	t := &Task{
		Name:        name,
		Description: description,
	}
	t.SetDue(due)
	return t
}

// NewDraftTask creates an empty, incomplete task for interactive editing.
func NewDraftTask() *Task {
	return &Task{}
}

// Due returns the due time and whether it is set.
func (t *Task) Due() (time.Time, bool) {
	if t.due == nil {
		return time.Time{}, false
	}
	return *t.due, true
}

// SetDue sets the due time, truncated to the minute.
func (t *Task) SetDue(due time.Time) {
	d := Normalize(due)
	t.due = &d
}

// ClearDue turns the task back into a draft.
func (t *Task) ClearDue() {
	t.due = nil
}

// IsDraft returns true while the task has no due time.
func (t *Task) IsDraft() bool {
	return t.due == nil
}

// ToggleCompletion flips the task between complete and incomplete.
func (t *Task) ToggleCompletion() {
	t.complete = !t.complete
}

// IsComplete returns true if the task has been completed.
func (t *Task) IsComplete() bool {
	return t.complete
}

// IsToday returns true if the task is due on the calendar day of now.
func (t *Task) IsToday(now time.Time) bool {
	due, ok := t.Due()
	return isToday(now, due, ok)
}

// Compare orders tasks by due time.
func (t *Task) Compare(other *Task) int {
	a, _ := t.Due()
	b, _ := other.Due()
	return compareInstants(a, b)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	clone := &Task{
		Name:        t.Name,
		Description: t.Description,
		complete:    t.complete,
	}
	if t.due != nil {
		d := *t.due
		clone.due = &d
	}
	return clone
}

type taskRecord struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Due         *int64  `json:"due"`
	Completion  *bool   `json:"completion"`
}

// MarshalJSON encodes the task in the saved schedule format.
func (t *Task) MarshalJSON() ([]byte, error) {
	due, ok := t.Due()
	if !ok {
		return nil, errDraft("task", t.Name, "due time")
	}
	millis := due.UnixMilli()
	return json.Marshal(taskRecord{
		Name:        &t.Name,
		Description: &t.Description,
		Due:         &millis,
		Completion:  &t.complete,
	})
}

// UnmarshalJSON decodes a task from the saved schedule format.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return malformed("task", err)
	}
	if err := requireFields("task",
		field{"name", rec.Name != nil},
		field{"description", rec.Description != nil},
		field{"due", rec.Due != nil},
		field{"completion", rec.Completion != nil},
	); err != nil {
		return err
	}
	*t = *NewTask(*rec.Name, *rec.Description, time.UnixMilli(*rec.Due))
	t.complete = *rec.Completion
	return nil
}
