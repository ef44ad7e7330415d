package importer

import (
	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/ident"
)

type options struct {
	generator  ident.Generator
	headerRows int
	labels     bool
}

func defaultOptions() *options {
	return &options{
		generator:  ident.Random(),
		headerRows: constants.HeaderRows,
		labels:     true,
	}
}

// Option is a function that configures an Importer.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns importer options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithGenerator sets the source of ids for new swimlanes and cards.
func WithGenerator(gen ident.Generator) Option {
	return func(o *options) error {
		if gen == nil {
			return &errors.ValidationError{
				Field:   "generator",
				Message: "cannot be nil",
			}
		}
		o.generator = gen
		return nil
	}
}

// WithHeaderRows sets how many leading rows are discarded.
func WithHeaderRows(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field:   "header_rows",
				Value:   n,
				Message: "cannot be negative",
			}
		}
		o.headerRows = n
		return nil
	}
}

// WithLabelColumn enables or disables reading labels from column 7.
func WithLabelColumn(enabled bool) Option {
	return func(o *options) error {
		o.labels = enabled
		return nil
	}
}
