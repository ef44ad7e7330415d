package wekanimport

import (
	"io"

	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/ident"
)

// Option is a function that configures a Client
type Option func(*config) error

// config holds the client settings shared by every run
type config struct {
	generator ident.Generator
	stdout    io.Writer
	labels    bool
	indent    string
}

func defaultConfig() *config {
	return &config{
		generator: ident.Random(),
		labels:    true,
		indent:    "  ",
	}
}

// options applies the given options to the client
func (c *client) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

// WithIDFormat selects how new swimlane and card ids are generated
func WithIDFormat(format ident.Format) Option {
	return func(c *config) error {
		gen, err := ident.New(format)
		if err != nil {
			return err
		}
		c.generator = gen
		return nil
	}
}

// WithGenerator sets the id generator directly, mostly for tests
func WithGenerator(gen ident.Generator) Option {
	return func(c *config) error {
		if gen == nil {
			return errors.NewValidationError("generator", nil, "cannot be nil")
		}
		c.generator = gen
		return nil
	}
}

// WithStdout sets where the merged document goes when no output path is given
func WithStdout(w io.Writer) Option {
	return func(c *config) error {
		c.stdout = w
		return nil
	}
}

// WithLabelColumn enables or disables the optional labels column
func WithLabelColumn(enabled bool) Option {
	return func(c *config) error {
		c.labels = enabled
		return nil
	}
}

// WithIndent sets the indent used for pretty output
func WithIndent(indent string) Option {
	return func(c *config) error {
		c.indent = indent
		return nil
	}
}
