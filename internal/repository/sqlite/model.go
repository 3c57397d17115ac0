package sqlite

import "time"

// AppointmentRow is a stored appointment. Position keeps the schedule order
// among appointments with the same start.
type AppointmentRow struct {
	ID          int64
	Position    int
	Name        string
	Description string
	StartTime   time.Time
	Hours       int
	Minutes     int
}

// TaskRow is a stored task.
type TaskRow struct {
	ID          int64
	Position    int
	Name        string
	Description string
	DueTime     time.Time
	Completed   bool
}

// TrackerRow is a stored habit tracker without its completions.
type TrackerRow struct {
	ID       int64
	Position int
	Name     string
}

// CompletionRow is one completion of a tracker, in insertion order.
type CompletionRow struct {
	TrackerID   int64
	Position    int
	CompletedAt time.Time
}
