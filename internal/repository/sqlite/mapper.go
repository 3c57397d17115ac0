package sqlite

import (
	"life-planner/internal/domain"
)

// AppointmentMapper handles conversion between domain appointments and rows.
type AppointmentMapper struct{}

// NewAppointmentMapper creates a new AppointmentMapper instance.
func NewAppointmentMapper() *AppointmentMapper {
	return &AppointmentMapper{}
}

// ToDatabase converts a scheduled appointment to a row at position. The
// appointment must not be a draft.
func (m *AppointmentMapper) ToDatabase(appointment *domain.Appointment, position int) AppointmentRow {
	period, _ := appointment.Period()
	return AppointmentRow{
		Position:    position,
		Name:        appointment.Name,
		Description: appointment.Description,
		StartTime:   period.Start(),
		Hours:       period.Hours(),
		Minutes:     period.Minutes(),
	}
}

// FromDatabase rebuilds the appointment from its start and duration.
func (m *AppointmentMapper) FromDatabase(row AppointmentRow) *domain.Appointment {
	return domain.NewAppointment(row.Name, row.Description, row.StartTime, row.Hours, row.Minutes)
}

// FromDatabaseSlice converts rows to appointments, keeping their order.
func (m *AppointmentMapper) FromDatabaseSlice(rows []*AppointmentRow) []*domain.Appointment {
	appointments := make([]*domain.Appointment, len(rows))
	for i, row := range rows {
		appointments[i] = m.FromDatabase(*row)
	}
	return appointments
}

// TaskMapper handles conversion between domain tasks and rows.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a scheduled task to a row at position. The task must
// not be a draft.
func (m *TaskMapper) ToDatabase(task *domain.Task, position int) TaskRow {
	due, _ := task.Due()
	return TaskRow{
		Position:    position,
		Name:        task.Name,
		Description: task.Description,
		DueTime:     due,
		Completed:   task.IsComplete(),
	}
}

// FromDatabase converts a row to a task, restoring its completion.
func (m *TaskMapper) FromDatabase(row TaskRow) *domain.Task {
	task := domain.NewTask(row.Name, row.Description, row.DueTime)
	if row.Completed {
		task.ToggleCompletion()
	}
	return task
}

// FromDatabaseSlice converts rows to tasks, keeping their order.
func (m *TaskMapper) FromDatabaseSlice(rows []*TaskRow) []*domain.Task {
	tasks := make([]*domain.Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// TrackerMapper handles conversion between habit trackers and their rows.
type TrackerMapper struct{}

// NewTrackerMapper creates a new TrackerMapper instance.
func NewTrackerMapper() *TrackerMapper {
	return &TrackerMapper{}
}

// ToDatabase converts a tracker to its row and one completion row per
// recorded completion. TrackerID is left for the caller to fill in.
func (m *TrackerMapper) ToDatabase(tracker *domain.HabitTracker, position int) (TrackerRow, []CompletionRow) {
	completions := tracker.Completions()
	rows := make([]CompletionRow, len(completions))
	for i, c := range completions {
		rows[i] = CompletionRow{Position: i, CompletedAt: c}
	}
	return TrackerRow{Position: position, Name: tracker.Name()}, rows
}

// FromDatabase rebuilds a tracker. Completions must already be in position
// order.
func (m *TrackerMapper) FromDatabase(row TrackerRow, completions []*CompletionRow) *domain.HabitTracker {
	tracker := domain.NewHabitTracker(row.Name)
	for _, c := range completions {
		tracker.AddCompletion(c.CompletedAt)
	}
	return tracker
}

// FromDatabaseSlice rebuilds trackers, attaching each completion to the
// tracker with its TrackerID.
func (m *TrackerMapper) FromDatabaseSlice(rows []*TrackerRow, completions []*CompletionRow) []*domain.HabitTracker {
	byTracker := make(map[int64][]*CompletionRow, len(rows))
	for _, c := range completions {
		byTracker[c.TrackerID] = append(byTracker[c.TrackerID], c)
	}

	trackers := make([]*domain.HabitTracker, len(rows))
	for i, row := range rows {
		trackers[i] = m.FromDatabase(*row, byTracker[row.ID])
	}
	return trackers
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Appointment *AppointmentMapper
	Task        *TaskMapper
	Tracker     *TrackerMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Appointment: NewAppointmentMapper(),
		Task:        NewTaskMapper(),
		Tracker:     NewTrackerMapper(),
	}
}
