package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// AppointmentCommand handles the appointment subcommands
type AppointmentCommand struct {
	app *App
}

// NewAppointmentCommand creates a new appointment command handler
func NewAppointmentCommand(app *App) *AppointmentCommand {
	return &AppointmentCommand{app: app}
}

// List prints the whole schedule or only today's appointments
func (c *AppointmentCommand) List(ctx context.Context, today bool) error {
	appointments, err := c.app.api.ListAppointments(ctx, today)
	if err != nil {
		return err
	}
	c.app.printer.Appointments(appointments)
	return nil
}

// Add schedules a new appointment
func (c *AppointmentCommand) Add(ctx context.Context, name string, in appointmentInput) error {
	appointment, err := c.app.buildAppointment(name, in)
	if err != nil {
		return err
	}
	added, err := c.app.api.AddAppointment(ctx, appointment)
	if err != nil {
		return err
	}
	c.app.println("Added appointment %q - %s", added.Name, c.app.printer.period(added.Start(), added.End()))
	return nil
}

// Remove deletes the appointment with the given bullet number
func (c *AppointmentCommand) Remove(ctx context.Context, arg string, today bool) error {
	number, err := parseNumber(arg)
	if err != nil {
		return err
	}
	removed, err := c.app.api.RemoveAppointment(ctx, number, today)
	if err != nil {
		return err
	}
	c.app.println("Removed appointment %q", removed.Name)
	return nil
}

func (r *RootCommand) newAppointmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointment",
		Aliases: []string{"appt", "a"},
		Short:   "Manage appointments",
	}

	var listToday bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments in chronological order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "list appointments", func(ctx context.Context, app *App) error {
				return NewAppointmentCommand(app).List(ctx, listToday)
			})
		},
	}
	listCmd.Flags().BoolVarP(&listToday, "today", "t", false, "Only list appointments starting today")

	var in appointmentInput
	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an appointment",
		Long: `Add an appointment starting at --start on --date and lasting --hours and --minutes.

Without --date the appointment is for today. --start is required.

Examples:
  lp appointment add "Dentist" --date 2024-06-12 --start 09:00 --hours 1
  lp appointment add "Standup" --start 09:30 --minutes 15 -d "daily sync"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "add appointment", func(ctx context.Context, app *App) error {
				return NewAppointmentCommand(app).Add(ctx, strings.Join(args, " "), in)
			})
		},
	}
	addCmd.Flags().StringVarP(&in.description, "description", "d", "", "Description shown under the appointment")
	addCmd.Flags().StringVar(&in.date, "date", "", "Date of the appointment (default today)")
	addCmd.Flags().StringVarP(&in.start, "start", "s", "", "Start time, e.g. 09:30")
	addCmd.Flags().IntVar(&in.hours, "hours", 0, "Length in hours")
	addCmd.Flags().IntVar(&in.minutes, "minutes", 0, "Length in minutes")

	var removeToday bool
	removeCmd := &cobra.Command{
		Use:     "remove [number]",
		Aliases: []string{"rm"},
		Short:   "Remove an appointment by its number in the listing",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "remove appointment", func(ctx context.Context, app *App) error {
				return NewAppointmentCommand(app).Remove(ctx, args[0], removeToday)
			})
		},
	}
	removeCmd.Flags().BoolVarP(&removeToday, "today", "t", false, "Number refers to the today listing")

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}
