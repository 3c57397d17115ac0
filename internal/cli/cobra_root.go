package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"life-planner/internal/api"
	"life-planner/internal/config"
	"life-planner/internal/errors"
)

// Session is the API a command runs against, together with the logger of
// that run and a func releasing the underlying store.
type Session struct {
	API    api.API
	Logger zerolog.Logger
	Close  func() error
}

// SessionFactory opens a session for the final configuration, after flags
// have been applied.
type SessionFactory func(ctx context.Context, cfg *config.Config) (*Session, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	config  *config.Config
	factory SessionFactory
}

// NewRootCommand creates the root cobra command with global flags. The
// configuration is loaded by loader once the flags are parsed.
func NewRootCommand(loader *config.Loader, factory SessionFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "lp",
		Short: "A command-line life planner",
		Long: `Life Planner (lp) keeps your appointments, tasks and habit trackers.

FEATURES:
  • Schedule appointments and tasks, always listed in chronological order
  • See only what is happening today with --today or lp today
  • Track daily habits and see when they were last done
  • Export appointments and tasks to iCalendar

EXAMPLES:
  lp appointment add "Dentist" --date 2024-06-12 --start 09:00 --hours 1
  lp appointment list --today
  lp task add "Send report" --due 17:00            # Due today at 17:00
  lp task toggle 1 --today                         # Complete the first task due today
  lp habit add "Exercise"
  lp habit done Exercise
  lp today
  lp export ical --output planner.ics

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is ~/.lifeplanner/config.yaml, or the file named by
  --config or LP_CONFIG.

  Storage Configuration:
    LP_STORAGE_DIR                         Data directory (default: ~/.lifeplanner)
    LP_STORAGE_FILENAME                    Data file (default: schedule.json or lifeplanner.db)
    LP_STORAGE_BACKEND                     json or sqlite (default: json)

  Time Configuration:
    LP_TIME_DATE_FORMAT                    Date display layout (default: Mon Jan 2 2006)
    LP_TIME_CLOCK_FORMAT                   Clock display layout (default: 15:04)
    LP_TIME_DATE_INPUT                     Date input layout (default: 2006-01-02)
    LP_TIME_CLOCK_INPUT                    Clock input layout (default: 15:04)

  Validation Configuration:
    LP_VALIDATION_NAME_MAX                 Max name length (default: 100)
    LP_VALIDATION_MAX_APPOINTMENT_HOURS    Max appointment length in hours (default: 168)

  Application Configuration:
    LP_APP_TIMEOUT                         Command timeout (default: 30s)
    LP_APP_LOG_LEVEL                       Log level (default: warn)
    LP_APP_LOG_FILE                        Log file (default: stderr)
    LP_APP_VERBOSE                         Verbose logging (default: false)
    LP_DEBUG                               Debug logging regardless of level

GETTING HELP:
  lp [command] --help                      # Get help for any specific command
  lp completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration with flag overrides before any command runs
			return root.getConfigFromFlags(cmd)
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.cmd.AddCommand(
		root.newAppointmentCommand(),
		root.newTaskCommand(),
		root.newHabitCommand(),
		root.newTodayCommand(),
		root.newExportCommand(),
	)

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every
// command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides LP_CONFIG)")

	// Storage configuration
	flags.String("dir", "", "Data directory (overrides LP_STORAGE_DIR)")
	flags.String("file", "", "Data file name (overrides LP_STORAGE_FILENAME)")
	flags.String("backend", "", "Storage backend, json or sqlite (overrides LP_STORAGE_BACKEND)")

	// Validation configuration
	flags.Int("name-max-length", 0, "Maximum name length (overrides LP_VALIDATION_NAME_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides LP_APP_TIMEOUT)")
	flags.String("log-level", "", "Log level (overrides LP_APP_LOG_LEVEL)")
	flags.String("log-file", "", "Log file (overrides LP_APP_LOG_FILE)")
	flags.Bool("verbose", false, "Enable verbose logging (overrides LP_APP_VERBOSE)")
}

// getConfigFromFlags loads the configuration, applying the flags that were
// set on the command line on top of file and environment values
func (r *RootCommand) getConfigFromFlags(cmd *cobra.Command) error {
	if r.loader == nil {
		return fmt.Errorf("configuration loader not initialized")
	}

	flags := cmd.Flags()
	overrides := config.ConfigOverrides{}

	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		r.loader.WithConfigFile(path)
	}

	// Storage configuration
	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides.StorageDir = &dir
	}
	if flags.Changed("file") {
		file, _ := flags.GetString("file")
		overrides.StorageFilename = &file
	}
	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		overrides.Backend = &backend
	}

	// Validation configuration
	if flags.Changed("name-max-length") {
		maxLength, _ := flags.GetInt("name-max-length")
		overrides.NameMaxLength = &maxLength
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		overrides.LogLevel = &level
	}
	if flags.Changed("log-file") {
		file, _ := flags.GetString("log-file")
		overrides.LogFile = &file
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	cfg, err := r.loader.LoadWithOverrides(&overrides)
	if err != nil {
		return err
	}
	r.config = cfg
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// run opens a session, hands the command an App and turns any failure into
// a user message
func (r *RootCommand) run(cmd *cobra.Command, operation string, fn func(ctx context.Context, app *App) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	session, err := r.factory(ctx, r.config)
	if err != nil {
		return NewErrorHandler(zerolog.Nop()).Handle("open the planner", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			session.Logger.Warn().Err(closeErr).Msg("failed to close store")
		}
	}()

	app := NewAppWithConfig(session.API, r.config, cmd.OutOrStdout())
	if err := fn(ctx, app); err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.IsErrorType(err, errors.ErrorTypeTimeout) {
			err = errors.NewTimeoutError(operation, r.getAppTimeout())
		}
		return NewErrorHandler(session.Logger).Handle(operation, err)
	}
	return nil
}
