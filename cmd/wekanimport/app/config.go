package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/wekanimport"
	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and finally command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string // summary format: table, json, yaml; empty detects

	// Config file
	ConfigFile string

	// Import request
	File     string
	JSON     string
	Swimlane string
	Output   string
	Sheet    string
	Pretty   bool
	DryRun   bool
	IDFormat string
	Labels   bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// logLevelSet records an explicit --log-level flag
	logLevelSet bool
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (WEKANIMPORT_*)
// 3. .env files
// 4. Config file (path, or ./.wekanimport.yaml, or ~/.wekanimport.yaml)
// 5. Defaults
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("id_format", constants.DefaultIDFormat)
	v.SetDefault("labels", true)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "cannot read "+path, err)
		}
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// A missing default config file is not an error.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config file", "cannot read "+v.ConfigFileUsed(), err)
			}
		}
	}

	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		File:     v.GetString("file"),
		JSON:     v.GetString("json"),
		Swimlane: v.GetString("swimlane"),
		Output:   v.GetString("output"),
		Sheet:    v.GetString("sheet"),
		Pretty:   v.GetBool("pretty"),
		DryRun:   v.GetBool("dry_run"),
		IDFormat: v.GetString("id_format"),
		Labels:   v.GetBool("labels"),

		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(os.Getenv("LOG_FORMAT"), v.GetString("log_format")),
		LogOutput: firstNonEmpty(os.Getenv("LOG_OUTPUT"), v.GetString("log_output")),
	}, nil
}

// UpdateFromFlags copies every flag the user set on the command line into c,
// so flags win over config files and the environment.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	strs := map[string]*string{
		"file":      &c.File,
		"json":      &c.JSON,
		"swimlane":  &c.Swimlane,
		"output":    &c.Output,
		"sheet":     &c.Sheet,
		"id-format": &c.IDFormat,
		"format":    &c.Format,
		"log-level": &c.LogLevel,
	}
	for name, dst := range strs {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	bools := map[string]*bool{
		"pretty":   &c.Pretty,
		"dry-run":  &c.DryRun,
		"labels":   &c.Labels,
		"verbose":  &c.Verbose,
		"quiet":    &c.Quiet,
		"no-color": &c.NoColor,
	}
	for name, dst := range bools {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}

	c.logLevelSet = flags.Changed("log-level")
}

// Request builds the import request described by c.
func (c *Config) Request() wekanimport.Request {
	return wekanimport.Request{
		File:     c.File,
		JSON:     c.JSON,
		Swimlane: c.Swimlane,
		Output:   c.Output,
		Sheet:    c.Sheet,
		Pretty:   c.Pretty,
		DryRun:   c.DryRun,
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
