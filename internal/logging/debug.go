package logging

import (
	"os"
)

// DebugEnabled returns true if debug mode is enabled via LP_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("LP_DEBUG") != ""
}

// EffectiveLevel returns the level to log at: debug when LP_DEBUG is set or
// verbose output was requested, otherwise the configured level.
func EffectiveLevel(configured string, verbose bool) string {
	if DebugEnabled() || verbose {
		return "debug"
	}
	return configured
}
