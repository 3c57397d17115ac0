package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"life-planner/internal/errors"
	"life-planner/internal/export/ical"
)

// ExportCommand handles the export subcommands
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// ICal writes appointments and tasks as an iCalendar document to output,
// or to the command output when output is empty
func (c *ExportCommand) ICal(ctx context.Context, today bool, output string) error {
	appointments, err := c.app.api.ListAppointments(ctx, today)
	if err != nil {
		return err
	}
	tasks, err := c.app.api.ListTasks(ctx, today)
	if err != nil {
		return err
	}

	exporter := ical.NewExporter(c.app.api.Now)
	if output == "" {
		return exporter.Write(c.app.out, appointments, tasks)
	}

	file, err := os.Create(output)
	if err != nil {
		return errors.NewStorageError("create "+output, err)
	}
	if err := exporter.Write(file, appointments, tasks); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.NewStorageError("close "+output, err)
	}

	c.app.println("Exported %d appointments and %d tasks to %s", len(appointments), len(tasks), output)
	return nil
}

func (r *RootCommand) newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the planner to other formats",
	}

	var today bool
	var output string
	icalCmd := &cobra.Command{
		Use:   "ical",
		Short: "Export appointments and tasks as iCalendar",
		Long: `Export appointments as events and tasks as to-dos in iCalendar format.

UIDs are derived from each item's name and time, so importing a newer export
updates the items already in your calendar.

Examples:
  lp export ical > planner.ics
  lp export ical --today --output today.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "export calendar", func(ctx context.Context, app *App) error {
				return NewExportCommand(app).ICal(ctx, today, output)
			})
		},
	}
	icalCmd.Flags().BoolVarP(&today, "today", "t", false, "Only export today's items")
	icalCmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	cmd.AddCommand(icalCmd)
	return cmd
}
