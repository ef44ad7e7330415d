// Package sheet reads work item rows from spreadsheet files. Sources are
// one-pass iterators; reopen the file to read it again.
package sheet

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/wekanimport/pkg/errors"
)

// Source is a sequential reader of rows.
//
//	for src.Next() {
//	    row := src.Row()
//	    ...
//	}
//	if err := src.Err(); err != nil { ... }
type Source interface {
	// Next advances to the next row and reports whether there is one.
	Next() bool
	// Row returns the current row. Only valid after Next returned true.
	Row() Row
	// Err returns the error that stopped iteration, if any.
	Err() error
	// Close releases the underlying file.
	Close() error
}

// Option configures Open.
type Option func(*options)

type options struct {
	sheet string
}

// WithSheet selects a worksheet by name. Without it the workbook's active
// sheet is read. Ignored for CSV files.
func WithSheet(name string) Option {
	return func(o *options) {
		o.sheet = name
	}
}

// Open opens path as a row source, choosing the reader from the extension.
func Open(path string, opts ...Option) (Source, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("tabular source", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx":
		return openXLSX(path, o)
	case ".csv":
		return openCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q (want .xlsx, .xlsm, .xltx or .csv)", errors.ErrUnsupportedFormat, ext)
	}
}

// Records returns an in-memory source over records. Row numbers start at 1.
func Records(name string, records ...[]string) Source {
	return &recordSource{name: name, records: records}
}

type recordSource struct {
	name    string
	records [][]string
	n       int
}

func (s *recordSource) Next() bool {
	if s.n >= len(s.records) {
		return false
	}
	s.n++
	return true
}

func (s *recordSource) Row() Row {
	return Row{Number: s.n, Source: s.name, Cells: s.records[s.n-1]}
}

func (s *recordSource) Err() error   { return nil }
func (s *recordSource) Close() error { return nil }
