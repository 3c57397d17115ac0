package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// HabitCommand handles the habit subcommands. Habits are referred to by
// their number in the listing or by name.
type HabitCommand struct {
	app *App
}

// NewHabitCommand creates a new habit command handler
func NewHabitCommand(app *App) *HabitCommand {
	return &HabitCommand{app: app}
}

// List prints every tracker with its status for today
func (c *HabitCommand) List(ctx context.Context) error {
	trackers, err := c.app.api.ListTrackers(ctx)
	if err != nil {
		return err
	}
	c.app.printer.Trackers(trackers, c.app.api.Now())
	return nil
}

// Add creates a tracker
func (c *HabitCommand) Add(ctx context.Context, name string) error {
	tracker, err := c.app.api.AddTracker(ctx, name)
	if err != nil {
		return err
	}
	c.app.println("Added habit tracker %q", tracker.Name())
	return nil
}

// Remove deletes a tracker and its history
func (c *HabitCommand) Remove(ctx context.Context, ref string) error {
	tracker, err := c.app.api.RemoveTracker(ctx, ref)
	if err != nil {
		return err
	}
	c.app.println("Removed habit tracker %q", tracker.Name())
	return nil
}

// Done marks a habit as done today
func (c *HabitCommand) Done(ctx context.Context, ref string) error {
	tracker, changed, err := c.app.api.MarkHabitDone(ctx, ref)
	if err != nil {
		return err
	}
	if changed {
		c.app.println("%s marked as done today.", tracker.Name())
	} else {
		c.app.println("%s already marked as done today.", tracker.Name())
	}
	return nil
}

// Undo removes today's completion of a habit
func (c *HabitCommand) Undo(ctx context.Context, ref string) error {
	tracker, changed, err := c.app.api.UnmarkHabit(ctx, ref)
	if err != nil {
		return err
	}
	if changed {
		c.app.println("%s unmarked as done today.", tracker.Name())
	} else {
		c.app.println("%s not done today.", tracker.Name())
	}
	return nil
}

func (r *RootCommand) newHabitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"h"},
		Short:   "Manage habit trackers",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List habit trackers and whether they are done today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "list habits", func(ctx context.Context, app *App) error {
				return NewHabitCommand(app).List(ctx)
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a habit tracker",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "add habit", func(ctx context.Context, app *App) error {
				return NewHabitCommand(app).Add(ctx, strings.Join(args, " "))
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove [number|name]",
		Aliases: []string{"rm"},
		Short:   "Remove a habit tracker",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "remove habit", func(ctx context.Context, app *App) error {
				return NewHabitCommand(app).Remove(ctx, strings.Join(args, " "))
			})
		},
	}

	doneCmd := &cobra.Command{
		Use:     "done [number|name]",
		Aliases: []string{"mark"},
		Short:   "Mark a habit as done today",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "mark habit done", func(ctx context.Context, app *App) error {
				return NewHabitCommand(app).Done(ctx, strings.Join(args, " "))
			})
		},
	}

	undoCmd := &cobra.Command{
		Use:     "undo [number|name]",
		Aliases: []string{"unmark"},
		Short:   "Undo today's completion of a habit",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "undo habit", func(ctx context.Context, app *App) error {
				return NewHabitCommand(app).Undo(ctx, strings.Join(args, " "))
			})
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd, doneCmd, undoCmd)
	return cmd
}
