package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// TodayCommand prints everything relevant today in one view
type TodayCommand struct {
	app *App
}

// NewTodayCommand creates a new today command handler
func NewTodayCommand(app *App) *TodayCommand {
	return &TodayCommand{app: app}
}

// Execute runs the today command
func (c *TodayCommand) Execute(ctx context.Context) error {
	agenda, err := c.app.api.Today(ctx)
	if err != nil {
		return err
	}

	c.app.println("%s", c.app.printer.date(agenda.Date))
	c.app.println("\nAppointments:")
	c.app.printer.Appointments(agenda.Appointments)
	c.app.println("\nTasks:")
	c.app.printer.Tasks(agenda.Tasks)
	c.app.println("\nHabits:")
	c.app.printer.Trackers(agenda.Trackers, agenda.Date)
	return nil
}

func (r *RootCommand) newTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's appointments, tasks and habits",
		Long: `Show today's appointments, tasks and habits.

The numbers match those used by --today, so an item listed here can be
removed or toggled with e.g. lp task toggle 2 --today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "show today", func(ctx context.Context, app *App) error {
				return NewTodayCommand(app).Execute(ctx)
			})
		},
	}
}
