package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the life planner
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Time        TimeConfig        `yaml:"time"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds where and how the schedule is saved
type StorageConfig struct {
	Dir            string `yaml:"dir" env:"LP_STORAGE_DIR"`
	Filename       string `yaml:"filename" env:"LP_STORAGE_FILENAME"`
	Backend        string `yaml:"backend" env:"LP_STORAGE_BACKEND"`
	DirPermissions uint32 `yaml:"dir_permissions" env:"LP_STORAGE_DIR_PERMISSIONS"`
}

// TimeConfig holds the layouts used to print and parse dates and clock times
type TimeConfig struct {
	DateFormat  string `yaml:"date_format" env:"LP_TIME_DATE_FORMAT"`
	ClockFormat string `yaml:"clock_format" env:"LP_TIME_CLOCK_FORMAT"`
	DateInput   string `yaml:"date_input" env:"LP_TIME_DATE_INPUT"`
	ClockInput  string `yaml:"clock_input" env:"LP_TIME_CLOCK_INPUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	NameMaxLength       int `yaml:"name_max_length" env:"LP_VALIDATION_NAME_MAX"`
	MaxAppointmentHours int `yaml:"max_appointment_hours" env:"LP_VALIDATION_MAX_APPOINTMENT_HOURS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	ShowDescriptions bool   `yaml:"show_descriptions" env:"LP_DISPLAY_SHOW_DESCRIPTIONS"`
	CompletedMarker  string `yaml:"completed_marker" env:"LP_DISPLAY_COMPLETED_MARKER"`
	PendingMarker    string `yaml:"pending_marker" env:"LP_DISPLAY_PENDING_MARKER"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `yaml:"timeout" env:"LP_APP_TIMEOUT"`
	LogLevel string        `yaml:"log_level" env:"LP_APP_LOG_LEVEL"`
	LogFile  string        `yaml:"log_file" env:"LP_APP_LOG_FILE"`
	Verbose  bool          `yaml:"verbose" env:"LP_APP_VERBOSE"`
}

// DefaultDir returns ~/.lifeplanner, the home of the saved schedule and the
// config file.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".lifeplanner")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:            DefaultDir(),
			Backend:        BackendJSON,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DateFormat:  "Mon Jan 2 2006",
			ClockFormat: "15:04",
			DateInput:   "2006-01-02",
			ClockInput:  "15:04",
		},
		Validation: ValidationConfig{
			NameMaxLength:       100,
			MaxAppointmentHours: 24 * 7,
		},
		Display: DisplayConfig{
			ShowDescriptions: true,
			CompletedMarker:  "[x]",
			PendingMarker:    "[ ]",
		},
		Application: ApplicationConfig{
			Timeout:  30 * time.Second,
			LogLevel: "warn",
		},
	}
}

// GetStoragePath returns the full path to the saved schedule. Without an
// explicit filename each backend uses its own default.
func (c *Config) GetStoragePath() string {
	filename := c.Storage.Filename
	if filename == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			filename = "lifeplanner.db"
		default:
			filename = "schedule.json"
		}
	}
	return filepath.Join(c.Storage.Dir, filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("LP_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("LP_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if backend := os.Getenv("LP_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if perms := os.Getenv("LP_STORAGE_DIR_PERMISSIONS"); perms != "" {
		p, err := strconv.ParseUint(perms, 8, 32)
		if err != nil {
			return &ConfigError{Field: "LP_STORAGE_DIR_PERMISSIONS", Message: "must be an octal mode"}
		}
		c.Storage.DirPermissions = uint32(p)
	}

	// Time configuration
	if format := os.Getenv("LP_TIME_DATE_FORMAT"); format != "" {
		c.Time.DateFormat = format
	}
	if format := os.Getenv("LP_TIME_CLOCK_FORMAT"); format != "" {
		c.Time.ClockFormat = format
	}
	if layout := os.Getenv("LP_TIME_DATE_INPUT"); layout != "" {
		c.Time.DateInput = layout
	}
	if layout := os.Getenv("LP_TIME_CLOCK_INPUT"); layout != "" {
		c.Time.ClockInput = layout
	}

	// Validation configuration
	if maxLen := os.Getenv("LP_VALIDATION_NAME_MAX"); maxLen != "" {
		n, err := strconv.Atoi(maxLen)
		if err != nil {
			return &ConfigError{Field: "LP_VALIDATION_NAME_MAX", Message: "must be an integer"}
		}
		c.Validation.NameMaxLength = n
	}
	if maxHours := os.Getenv("LP_VALIDATION_MAX_APPOINTMENT_HOURS"); maxHours != "" {
		n, err := strconv.Atoi(maxHours)
		if err != nil {
			return &ConfigError{Field: "LP_VALIDATION_MAX_APPOINTMENT_HOURS", Message: "must be an integer"}
		}
		c.Validation.MaxAppointmentHours = n
	}

	// Display configuration
	if show := os.Getenv("LP_DISPLAY_SHOW_DESCRIPTIONS"); show != "" {
		c.Display.ShowDescriptions = ParseBoolWithFallback(show, c.Display.ShowDescriptions)
	}
	if marker := os.Getenv("LP_DISPLAY_COMPLETED_MARKER"); marker != "" {
		c.Display.CompletedMarker = marker
	}
	if marker := os.Getenv("LP_DISPLAY_PENDING_MARKER"); marker != "" {
		c.Display.PendingMarker = marker
	}

	// Application configuration
	if timeout := os.Getenv("LP_APP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &ConfigError{Field: "LP_APP_TIMEOUT", Message: "must be a duration such as 30s"}
		}
		c.Application.Timeout = d
	}
	if level := os.Getenv("LP_APP_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if file := os.Getenv("LP_APP_LOG_FILE"); file != "" {
		c.Application.LogFile = file
	}
	if verbose := os.Getenv("LP_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return &ConfigError{Field: "storage.backend", Message: "backend must be json or sqlite"}
	}
	if c.Storage.DirPermissions == 0 || c.Storage.DirPermissions > 0777 {
		return &ConfigError{Field: "storage.dir_permissions", Message: "permissions must be between 0001 and 0777"}
	}

	// Validate time configuration
	if c.Time.DateFormat == "" || c.Time.ClockFormat == "" {
		return &ConfigError{Field: "time.date_format", Message: "display formats cannot be empty"}
	}
	if c.Time.DateInput == "" || c.Time.ClockInput == "" {
		return &ConfigError{Field: "time.date_input", Message: "input layouts cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.NameMaxLength < 1 {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must be at least 1"}
	}
	if c.Validation.MaxAppointmentHours < 1 {
		return &ConfigError{Field: "validation.max_appointment_hours", Message: "max appointment hours must be at least 1"}
	}

	// Validate display configuration
	if c.Display.CompletedMarker == "" || c.Display.PendingMarker == "" {
		return &ConfigError{Field: "display.completed_marker", Message: "completion markers cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if _, err := zerolog.ParseLevel(c.Application.LogLevel); err != nil || c.Application.LogLevel == "" {
		return &ConfigError{Field: "application.log_level", Message: "unknown log level " + c.Application.LogLevel}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
