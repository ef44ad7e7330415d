// Package app provides the application context and dependency management
// for the wekanimport CLI. It centralizes configuration, logging and the
// import client so commands only deal with flags and output.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/wekanimport"
	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/ident"
)

// App represents the wekanimport application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// stdout receives the merged document, stderr everything meant for humans
	stdout io.Writer
	stderr io.Writer

	// Import client (lazy-initialized, singleton)
	mu     sync.RWMutex
	client wekanimport.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		logger := NewLogger(app.config, app.stderr)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the import client, creating it lazily if needed.
func (a *App) Client() (wekanimport.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.buildClientOptions()
	if err != nil {
		return nil, err
	}
	c, err := wekanimport.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "import client", "", err)
	}

	logger := a.logger
	c.OnSwimlaneAdded(func(s board.Swimlane) {
		logger.Info().Str("swimlane_id", s.ID).Str("title", s.Title).Msg("Created swimlane")
	})
	c.OnCardAdded(func(card board.Card) {
		logger.Debug().Str("card_id", card.ID).Str("title", card.Title).Str("list_id", card.ListID).Msg("Added card")
	})

	a.client = c
	return c, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() ([]wekanimport.Option, error) {
	format, err := ident.ParseFormat(a.config.IDFormat)
	if err != nil {
		return nil, err
	}
	return []wekanimport.Option{
		wekanimport.WithIDFormat(format),
		wekanimport.WithStdout(a.stdout),
		wekanimport.WithLabelColumn(a.config.Labels),
	}, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom import client (useful for testing).
func WithClient(c wekanimport.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithOutput redirects the merged document and the human output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) error {
		a.stdout = stdout
		a.stderr = stderr
		return nil
	}
}
