package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/wekanimport/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. WEKANIMPORT_LOG_LEVEL or LOG_LEVEL environment variable
//  5. Default (info)
//
// Warnings about conflicting settings are written to stderr.
func NewLogger(config *Config, stderr io.Writer) zerolog.Logger {
	level := determineLogLevel(config, stderr)

	logConfig := &logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	}

	return logging.NewLoggerFromConfig(logConfig)
}

// determineLogLevel determines the log level using the precedence rules.
func determineLogLevel(config *Config, stderr io.Writer) string {
	if config.logLevelSet {
		return checkedLevel(config.LogLevel, stderr)
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	if config.LogLevel != "" {
		return checkedLevel(config.LogLevel, stderr)
	}
	return "info"
}

func checkedLevel(level string, stderr io.Writer) string {
	validated := validateLogLevel(level)
	if validated != level {
		fmt.Fprintf(stderr, "Warning: invalid log level %q, using %q\n", level, validated)
	}
	return validated
}

// validateLogLevel validates a log level string and returns a valid level.
// If the input is invalid, returns "info" as a safe default.
func validateLogLevel(level string) string {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[level] {
		return level
	}

	return "info"
}
