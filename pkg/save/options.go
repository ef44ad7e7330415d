// Package save describes where and how a merged board document is written.
package save

import "io"

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	indent string
}

// Path returns the destination file, or "" when writing to Writer.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer used when no path is set.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Indent returns the indent used per nesting level, "" for compact output.
func (s *Options) Indent() string {
	return s.indent
}

// ToStdout reports whether the document goes to Writer rather than a file.
func (s *Options) ToStdout() bool {
	return s.path == "" || s.path == "-"
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		path:   "",
		writer: nil,
		indent: "",
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithPath for filesystem saves. "-" means the configured writer.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithIndent pretty prints the document.
func WithIndent(indent string) Option {
	return func(s *Options) {
		s.indent = indent
	}
}
