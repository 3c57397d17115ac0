package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"life-planner/internal/api"
	"life-planner/internal/config"
	"life-planner/internal/domain"
	"life-planner/internal/validation"
)

// App is what a command handler works with during one invocation
type App struct {
	api       api.API
	config    *config.Config
	validator *validation.Validator
	printer   *Printer
	out       io.Writer
}

// NewApp creates an App using the default configuration
func NewApp(apiInstance api.API, out io.Writer) *App {
	return NewAppWithConfig(apiInstance, config.NewConfig(), out)
}

// NewAppWithConfig creates an App that formats and validates with cfg
func NewAppWithConfig(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	return &App{
		api:       apiInstance,
		config:    cfg,
		validator: validation.NewValidatorWithConfig(cfg),
		printer:   NewPrinter(out, cfg),
		out:       out,
	}
}

// println writes one line of command feedback
func (a *App) println(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// parseNumber parses the 1-based bullet number of a listed item
func parseNumber(arg string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		validationError := validation.NewValidationError()
		validationError.AddInvalidFormatError("number", arg, "a bullet number such as 1")
		return 0, validationError
	}
	return number, nil
}

// instant combines a date and a clock time entered on the command line. An
// empty date means today. ok is false when no clock time was given, leaving
// the caller with a draft.
func (a *App) instant(dateField, date, clockField, clock string) (t time.Time, ok bool, err error) {
	if strings.TrimSpace(clock) == "" {
		return time.Time{}, false, nil
	}

	day := a.api.Now()
	if strings.TrimSpace(date) != "" {
		day, err = a.validator.ParseDate(dateField, date)
		if err != nil {
			return time.Time{}, false, err
		}
	}

	at, err := a.validator.ParseClock(clockField, clock)
	if err != nil {
		return time.Time{}, false, err
	}
	return validation.CombineDateClock(day, at), true, nil
}

// appointmentInput holds the flags of `appointment add`
type appointmentInput struct {
	description string
	date        string
	start       string
	hours       int
	minutes     int
}

// buildAppointment turns the add flags into an appointment. Without a start
// time the result is a draft, which the API refuses.
func (a *App) buildAppointment(name string, in appointmentInput) (*domain.Appointment, error) {
	start, ok, err := a.instant("date", in.date, "start", in.start)
	if err != nil {
		return nil, err
	}

	appointment := domain.NewDraftAppointment()
	appointment.Name = name
	appointment.Description = in.description
	if ok {
		appointment.SetPeriod(domain.NewInterval(start, in.hours, in.minutes))
	}
	return appointment, nil
}

// taskInput holds the flags of `task add`
type taskInput struct {
	description string
	date        string
	due         string
}

// buildTask turns the add flags into a task. Without a due time the result
// is a draft, which the API refuses.
func (a *App) buildTask(name string, in taskInput) (*domain.Task, error) {
	due, ok, err := a.instant("date", in.date, "due", in.due)
	if err != nil {
		return nil, err
	}

	task := domain.NewDraftTask()
	task.Name = name
	task.Description = in.description
	if ok {
		task.SetDue(due)
	}
	return task, nil
}
