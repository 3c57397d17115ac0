package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"life-planner/internal/config"
	"life-planner/internal/domain"
)

// Printer renders planner listings in the numbered format that the
// remove, toggle, done and undo commands refer back to
type Printer struct {
	out    io.Writer
	config *config.Config
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, cfg *config.Config) *Printer {
	return &Printer{out: out, config: cfg}
}

// Appointments prints one line per appointment:
//
//	1. Dentist - Wed Jun 12 2024 from 09:00 to 10:00
//	1. Retreat - Wed Jun 12 2024 18:00 to Fri Jun 14 2024 12:00
func (p *Printer) Appointments(appointments []*domain.Appointment) {
	if len(appointments) == 0 {
		fmt.Fprintln(p.out, "No appointments.")
		return
	}
	for i, appointment := range appointments {
		fmt.Fprintf(p.out, "%d. %s - %s\n", i+1, appointment.Name, p.period(appointment.Start(), appointment.End()))
		p.description(appointment.Description)
	}
}

// Tasks prints one line per task with its completion marker:
//
//	[ ] 1. Report - due Wed Jun 12 2024 at 17:00
func (p *Printer) Tasks(tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.out, "No tasks.")
		return
	}
	for i, task := range tasks {
		due, _ := task.Due()
		fmt.Fprintf(p.out, "%s %d. %s - due %s at %s\n",
			p.marker(task.IsComplete()), i+1, task.Name, p.date(due), p.clock(due))
		p.description(task.Description)
	}
}

// Trackers prints whether each habit is done today. Habits not done today
// show how long ago they were last done.
func (p *Printer) Trackers(trackers []*domain.HabitTracker, now time.Time) {
	if len(trackers) == 0 {
		fmt.Fprintln(p.out, "No habit trackers.")
		return
	}
	for i, tracker := range trackers {
		last, ok := tracker.LastCompletion()
		switch {
		case tracker.IsDoneToday(now):
			fmt.Fprintf(p.out, "%s %d. %s - done at %s\n", p.marker(true), i+1, tracker.Name(), p.clock(last))
		case ok:
			fmt.Fprintf(p.out, "%s %d. %s - last done %s\n", p.marker(false), i+1, tracker.Name(),
				humanize.RelTime(last, now, "ago", "from now"))
		default:
			fmt.Fprintf(p.out, "%s %d. %s\n", p.marker(false), i+1, tracker.Name())
		}
	}
}

func (p *Printer) period(start, end time.Time) string {
	startDate, endDate := p.date(start), p.date(end)
	if startDate == endDate {
		return fmt.Sprintf("%s from %s to %s", startDate, p.clock(start), p.clock(end))
	}
	return fmt.Sprintf("%s %s to %s %s", startDate, p.clock(start), endDate, p.clock(end))
}

func (p *Printer) description(description string) {
	if description != "" && p.config.Display.ShowDescriptions {
		fmt.Fprintf(p.out, "\t%s\n", description)
	}
}

func (p *Printer) marker(done bool) string {
	if done {
		return p.config.Display.CompletedMarker
	}
	return p.config.Display.PendingMarker
}

func (p *Printer) date(t time.Time) string {
	return t.Format(p.config.Time.DateFormat)
}

func (p *Printer) clock(t time.Time) string {
	return t.Format(p.config.Time.ClockFormat)
}
