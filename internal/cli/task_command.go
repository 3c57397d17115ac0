package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// TaskCommand handles the task subcommands
type TaskCommand struct {
	app *App
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app}
}

// List prints all tasks or only those due today
func (c *TaskCommand) List(ctx context.Context, today bool) error {
	tasks, err := c.app.api.ListTasks(ctx, today)
	if err != nil {
		return err
	}
	c.app.printer.Tasks(tasks)
	return nil
}

// Add schedules a new task
func (c *TaskCommand) Add(ctx context.Context, name string, in taskInput) error {
	task, err := c.app.buildTask(name, in)
	if err != nil {
		return err
	}
	added, err := c.app.api.AddTask(ctx, task)
	if err != nil {
		return err
	}
	due, _ := added.Due()
	c.app.println("Added task %q - due %s at %s", added.Name, c.app.printer.date(due), c.app.printer.clock(due))
	return nil
}

// Remove deletes the task with the given bullet number
func (c *TaskCommand) Remove(ctx context.Context, arg string, today bool) error {
	number, err := parseNumber(arg)
	if err != nil {
		return err
	}
	removed, err := c.app.api.RemoveTask(ctx, number, today)
	if err != nil {
		return err
	}
	c.app.println("Removed task %q", removed.Name)
	return nil
}

// Toggle flips the completion of the task with the given bullet number
func (c *TaskCommand) Toggle(ctx context.Context, arg string, today bool) error {
	number, err := parseNumber(arg)
	if err != nil {
		return err
	}
	task, err := c.app.api.ToggleTask(ctx, number, today)
	if err != nil {
		return err
	}
	if task.IsComplete() {
		c.app.println("Task %q marked complete", task.Name)
	} else {
		c.app.println("Task %q marked incomplete", task.Name)
	}
	return nil
}

func (r *RootCommand) newTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage tasks",
	}

	var listToday bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by due time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "list tasks", func(ctx context.Context, app *App) error {
				return NewTaskCommand(app).List(ctx, listToday)
			})
		},
	}
	listCmd.Flags().BoolVarP(&listToday, "today", "t", false, "Only list tasks due today")

	var in taskInput
	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task",
		Long: `Add a task due at --due on --date.

Without --date the task is due today. --due is required.

Examples:
  lp task add "Send report" --due 17:00
  lp task add "File taxes" --date 2024-06-30 --due 23:59`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "add task", func(ctx context.Context, app *App) error {
				return NewTaskCommand(app).Add(ctx, strings.Join(args, " "), in)
			})
		},
	}
	addCmd.Flags().StringVarP(&in.description, "description", "d", "", "Description shown under the task")
	addCmd.Flags().StringVar(&in.date, "date", "", "Due date (default today)")
	addCmd.Flags().StringVar(&in.due, "due", "", "Due time, e.g. 17:00")

	var removeToday bool
	removeCmd := &cobra.Command{
		Use:     "remove [number]",
		Aliases: []string{"rm"},
		Short:   "Remove a task by its number in the listing",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "remove task", func(ctx context.Context, app *App) error {
				return NewTaskCommand(app).Remove(ctx, args[0], removeToday)
			})
		},
	}
	removeCmd.Flags().BoolVarP(&removeToday, "today", "t", false, "Number refers to the today listing")

	var toggleToday bool
	toggleCmd := &cobra.Command{
		Use:   "toggle [number]",
		Short: "Mark a task complete, or incomplete again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "toggle task", func(ctx context.Context, app *App) error {
				return NewTaskCommand(app).Toggle(ctx, args[0], toggleToday)
			})
		},
	}
	toggleCmd.Flags().BoolVarP(&toggleToday, "today", "t", false, "Number refers to the today listing")

	cmd.AddCommand(listCmd, addCmd, removeCmd, toggleCmd)
	return cmd
}
