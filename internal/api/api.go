package api

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"life-planner/internal/config"
	"life-planner/internal/domain"
	"life-planner/internal/errors"
	"life-planner/internal/logging"
	"life-planner/internal/repository"
	"life-planner/internal/validation"
)

// API defines the planner operations used by the command line.
//
// Appointments and tasks are addressed by their 1-based position in the
// listing the user saw: the whole schedule, or the today view when today is
// set. Habit trackers are addressed by position or by name.
type API interface {
	// Appointment operations
	ListAppointments(ctx context.Context, today bool) ([]*domain.Appointment, error)
	AddAppointment(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	RemoveAppointment(ctx context.Context, number int, today bool) (*domain.Appointment, error)

	// Task operations
	ListTasks(ctx context.Context, today bool) ([]*domain.Task, error)
	AddTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	RemoveTask(ctx context.Context, number int, today bool) (*domain.Task, error)
	ToggleTask(ctx context.Context, number int, today bool) (*domain.Task, error)

	// Habit tracker operations
	ListTrackers(ctx context.Context) ([]*domain.HabitTracker, error)
	AddTracker(ctx context.Context, name string) (*domain.HabitTracker, error)
	RemoveTracker(ctx context.Context, ref string) (*domain.HabitTracker, error)
	MarkHabitDone(ctx context.Context, ref string) (*domain.HabitTracker, bool, error)
	UnmarkHabit(ctx context.Context, ref string) (*domain.HabitTracker, bool, error)

	// Views
	Today(ctx context.Context) (*Agenda, error)
	Snapshot(ctx context.Context) (*repository.Snapshot, error)
	Now() time.Time
}

// Agenda is everything relevant on one calendar day.
type Agenda struct {
	Date         time.Time
	Appointments []*domain.Appointment
	Tasks        []*domain.Task
	Trackers     []*domain.HabitTracker
}

type apiImpl struct {
	store        repository.Store
	now          domain.Clock
	validator    *validation.Validator
	appointments *validation.AppointmentValidator
	tasks        *validation.TaskValidator
	log          zerolog.Logger
}

// New creates a new API instance backed by store. now is the clock used for
// today views and habit completions.
func New(store repository.Store, cfg *config.Config, now domain.Clock, logger zerolog.Logger) API {
	if now == nil {
		now = time.Now
	}
	v := validation.NewValidatorWithConfig(cfg)
	return &apiImpl{
		store:        store,
		now:          now,
		validator:    v,
		appointments: validation.NewAppointmentValidator(v),
		tasks:        validation.NewTaskValidator(v),
		log:          logging.Component(logger, "api"),
	}
}

func (a *apiImpl) Now() time.Time {
	return domain.Normalize(a.now())
}

// ========== Appointments ==========

func (a *apiImpl) ListAppointments(ctx context.Context, today bool) ([]*domain.Appointment, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return a.appointmentView(snapshot, today).Items(), nil
}

func (a *apiImpl) AddAppointment(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if err := a.appointments.ValidateAppointment(appointment); err != nil {
		return nil, errors.NewValidationError("invalid appointment", err)
	}
	appointment.Name = strings.TrimSpace(appointment.Name)

	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Appointments.Add(appointment)
	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	a.log.Info().Str("name", appointment.Name).Time("start", appointment.Start()).Msg("appointment added")
	return appointment, nil
}

func (a *apiImpl) RemoveAppointment(ctx context.Context, number int, today bool) (*domain.Appointment, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	view := a.appointmentView(snapshot, today)
	if err := a.validator.ValidateIndex("number", number-1, view.Len()); err != nil {
		return nil, errors.NewValidationError("invalid appointment number", err)
	}
	appointment := view.Get(number - 1)
	snapshot.Appointments.Remove(appointment)

	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	a.log.Info().Str("name", appointment.Name).Bool("today", today).Msg("appointment removed")
	return appointment, nil
}

// ========== Tasks ==========

func (a *apiImpl) ListTasks(ctx context.Context, today bool) ([]*domain.Task, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return a.taskView(snapshot, today).Items(), nil
}

func (a *apiImpl) AddTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := a.tasks.ValidateTask(task); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}
	task.Name = strings.TrimSpace(task.Name)

	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Tasks.Add(task)
	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	due, _ := task.Due()
	a.log.Info().Str("name", task.Name).Time("due", due).Msg("task added")
	return task, nil
}

func (a *apiImpl) RemoveTask(ctx context.Context, number int, today bool) (*domain.Task, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	task, err := a.resolveTask(snapshot, number, today)
	if err != nil {
		return nil, err
	}
	snapshot.Tasks.Remove(task)

	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	a.log.Info().Str("name", task.Name).Bool("today", today).Msg("task removed")
	return task, nil
}

func (a *apiImpl) ToggleTask(ctx context.Context, number int, today bool) (*domain.Task, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	// The today view shares its tasks with the backing schedule, so toggling
	// the resolved task changes the one that gets saved.
	task, err := a.resolveTask(snapshot, number, today)
	if err != nil {
		return nil, err
	}
	task.ToggleCompletion()

	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	a.log.Info().Str("name", task.Name).Bool("complete", task.IsComplete()).Msg("task toggled")
	return task, nil
}

func (a *apiImpl) resolveTask(snapshot *repository.Snapshot, number int, today bool) (*domain.Task, error) {
	view := a.taskView(snapshot, today)
	if err := a.validator.ValidateIndex("number", number-1, view.Len()); err != nil {
		return nil, errors.NewValidationError("invalid task number", err)
	}
	return view.Get(number - 1), nil
}

// ========== Habit trackers ==========

func (a *apiImpl) ListTrackers(ctx context.Context) ([]*domain.HabitTracker, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Trackers.All(), nil
}

func (a *apiImpl) AddTracker(ctx context.Context, name string) (*domain.HabitTracker, error) {
	if err := a.validator.ValidateName("name", name); err != nil {
		return nil, errors.NewValidationError("invalid habit tracker", err)
	}
	name = strings.TrimSpace(name)

	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.Trackers.Find(name) >= 0 {
		return nil, errors.NewInvalidInputError("name", "a habit tracker with this name already exists").WithEntity("habit tracker")
	}

	tracker := domain.NewHabitTracker(name)
	snapshot.Trackers.Add(tracker)
	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	a.log.Info().Str("name", name).Msg("habit tracker added")
	return tracker, nil
}

func (a *apiImpl) RemoveTracker(ctx context.Context, ref string) (*domain.HabitTracker, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	index, err := a.resolveTracker(snapshot, ref)
	if err != nil {
		return nil, err
	}
	tracker := snapshot.Trackers.Get(index)
	snapshot.Trackers.Remove(index)

	if err := a.save(ctx, snapshot); err != nil {
		return nil, err
	}

	a.log.Info().Str("name", tracker.Name()).Msg("habit tracker removed")
	return tracker, nil
}

// MarkHabitDone records a completion now unless the habit is already done
// today. The bool reports whether anything was recorded.
func (a *apiImpl) MarkHabitDone(ctx context.Context, ref string) (*domain.HabitTracker, bool, error) {
	return a.updateTracker(ctx, ref, "habit marked done", func(tracker *domain.HabitTracker, now time.Time) bool {
		if tracker.IsDoneToday(now) {
			return false
		}
		tracker.MarkDone(now)
		return true
	})
}

// UnmarkHabit removes today's completion. The bool is false when the habit
// was not done today.
func (a *apiImpl) UnmarkHabit(ctx context.Context, ref string) (*domain.HabitTracker, bool, error) {
	return a.updateTracker(ctx, ref, "habit completion undone", func(tracker *domain.HabitTracker, now time.Time) bool {
		if !tracker.IsDoneToday(now) {
			return false
		}
		tracker.UnmarkDone()
		return true
	})
}

func (a *apiImpl) updateTracker(ctx context.Context, ref, msg string, update func(*domain.HabitTracker, time.Time) bool) (*domain.HabitTracker, bool, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, false, err
	}

	index, err := a.resolveTracker(snapshot, ref)
	if err != nil {
		return nil, false, err
	}
	tracker := snapshot.Trackers.Get(index)
	if !update(tracker, a.now()) {
		a.log.Debug().Str("name", tracker.Name()).Msg("habit unchanged")
		return tracker, false, nil
	}

	if err := a.save(ctx, snapshot); err != nil {
		return nil, false, err
	}

	a.log.Info().Str("name", tracker.Name()).Int("completions", tracker.Len()).Msg(msg)
	return tracker, true, nil
}

// resolveTracker accepts a 1-based number or an exact tracker name. A name
// made only of digits is looked up as a name when no number matches.
func (a *apiImpl) resolveTracker(snapshot *repository.Snapshot, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		validationError := validation.NewValidationError()
		validationError.AddRequiredError("habit")
		return -1, errors.NewValidationError("invalid habit tracker", validationError)
	}

	if number, err := strconv.Atoi(ref); err == nil {
		indexErr := a.validator.ValidateIndex("number", number-1, snapshot.Trackers.Len())
		if indexErr == nil {
			return number - 1, nil
		}
		if index := snapshot.Trackers.Find(ref); index >= 0 {
			return index, nil
		}
		return -1, errors.NewValidationError("invalid habit tracker number", indexErr)
	}

	if index := snapshot.Trackers.Find(ref); index >= 0 {
		return index, nil
	}
	return -1, errors.NewNotFoundError("habit tracker", ref)
}

// ========== Views ==========

func (a *apiImpl) Today(ctx context.Context) (*Agenda, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return &Agenda{
		Date:         a.Now(),
		Appointments: a.appointmentView(snapshot, true).Items(),
		Tasks:        a.taskView(snapshot, true).Items(),
		Trackers:     snapshot.Trackers.All(),
	}, nil
}

func (a *apiImpl) Snapshot(ctx context.Context) (*repository.Snapshot, error) {
	return a.load(ctx)
}

func (a *apiImpl) appointmentView(snapshot *repository.Snapshot, today bool) *domain.Schedule[*domain.Appointment] {
	if today {
		return snapshot.Appointments.TodayView(a.now())
	}
	return snapshot.Appointments
}

func (a *apiImpl) taskView(snapshot *repository.Snapshot, today bool) *domain.Schedule[*domain.Task] {
	if today {
		return snapshot.Tasks.TodayView(a.now())
	}
	return snapshot.Tasks
}

// ========== Persistence ==========

func (a *apiImpl) load(ctx context.Context) (*repository.Snapshot, error) {
	snapshot, err := a.store.Load(ctx)
	if err != nil {
		return nil, a.storeError("load", err)
	}
	return snapshot, nil
}

func (a *apiImpl) save(ctx context.Context, snapshot *repository.Snapshot) error {
	if err := a.store.Save(ctx, snapshot); err != nil {
		return a.storeError("save", err)
	}
	return nil
}

func (a *apiImpl) storeError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.WrapError(err, errors.ErrorTypeTimeout, "operation timed out: "+operation+" schedule")
	}
	if errors.ShouldLogError(err) {
		a.log.Error().Err(err).Str("operation", operation).Msg("store failed")
	}
	return err
}
