package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
	explicit   bool
}

// NewLoader creates a new configuration loader. The config file is taken
// from LP_CONFIG, falling back to ~/.lifeplanner/config.yaml.
func NewLoader() *Loader {
	l := &Loader{
		config:     NewConfig(),
		configPath: filepath.Join(DefaultDir(), "config.yaml"),
	}
	if path := os.Getenv("LP_CONFIG"); path != "" {
		l.configPath = path
		l.explicit = true
	}
	return l
}

// WithConfigFile reads the given file instead of the default one. The file
// must exist.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configPath = path
	l.explicit = true
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFile() error {
	data, err := os.ReadFile(l.configPath)
	if errors.Is(err, fs.ErrNotExist) && !l.explicit {
		return nil
	}
	if err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read %s: %v", l.configPath, err)}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(l.config); err != nil && !errors.Is(err, io.EOF) {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid %s: %v", l.configPath, err)}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StorageDir      *string
	StorageFilename *string
	Backend         *string

	// Validation overrides
	NameMaxLength *int

	// Application overrides
	Timeout  *time.Duration
	LogLevel *string
	LogFile  *string
	Verbose  *bool
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	// Storage overrides
	if o.StorageDir != nil {
		config.Storage.Dir = *o.StorageDir
	}
	if o.StorageFilename != nil {
		config.Storage.Filename = *o.StorageFilename
	}
	if o.Backend != nil {
		config.Storage.Backend = *o.Backend
	}

	// Validation overrides
	if o.NameMaxLength != nil {
		config.Validation.NameMaxLength = *o.NameMaxLength
	}

	// Application overrides
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.LogLevel != nil {
		config.Application.LogLevel = *o.LogLevel
	}
	if o.LogFile != nil {
		config.Application.LogFile = *o.LogFile
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
