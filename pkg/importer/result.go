package importer

import (
	"fmt"
	"strings"
	"time"
)

// Severity classifies a row issue.
type Severity string

const (
	// SeverityWarning marks a problem that still produced a card.
	SeverityWarning Severity = "warning"
	// SeverityError marks a row that produced no card.
	SeverityError Severity = "error"
)

// Issue is a problem found while importing one row.
type Issue struct {
	Row      int
	Severity Severity
	Err      error
}

// Error implements the error interface.
func (i Issue) Error() string {
	return i.Err.Error()
}

// Unwrap returns the underlying error.
func (i Issue) Unwrap() error {
	return i.Err
}

// SwimlaneOutcome describes the swimlane every imported card was placed in.
type SwimlaneOutcome struct {
	ID      string
	Title   string
	Created bool
}

// Result represents the outcome of an import run.
type Result struct {
	Swimlane SwimlaneOutcome
	CardIDs  []string
	Issues   []Issue
	Metadata ResultMetadata
}

// ResultMetadata contains timing and counters for a run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics counts what happened to the rows of the source.
type ResultStatistics struct {
	RowsRead     int // every row, header rows included
	HeaderRows   int
	CardsCreated int
	RowsSkipped  int // blank rows and rows with an error issue
	Warnings     int
	Errors       int
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		CardIDs: []string{},
		Issues:  []Issue{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// IsSuccess reports whether every data row produced a card.
func (r *Result) IsSuccess() bool {
	return r.Metadata.Stats.Errors == 0
}

// Errors returns the issues that excluded a row.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the issues that did not exclude a row.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	stats := r.Metadata.Stats

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Imported %d %s into ", stats.CardsCreated, plural(stats.CardsCreated, "card", "cards")))
	if r.Swimlane.Created {
		b.WriteString("new ")
	}
	b.WriteString(fmt.Sprintf("swimlane %q", r.Swimlane.Title))

	var notes []string
	if stats.RowsSkipped > 0 {
		notes = append(notes, fmt.Sprintf("%d %s skipped", stats.RowsSkipped, plural(stats.RowsSkipped, "row", "rows")))
	}
	if stats.Errors > 0 {
		notes = append(notes, fmt.Sprintf("%d %s", stats.Errors, plural(stats.Errors, "error", "errors")))
	}
	if stats.Warnings > 0 {
		notes = append(notes, fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings")))
	}
	if len(notes) > 0 {
		b.WriteString(" (" + strings.Join(notes, ", ") + ")")
	}
	return b.String()
}

func (r *Result) addIssue(row int, severity Severity, err error) {
	r.Issues = append(r.Issues, Issue{Row: row, Severity: severity, Err: err})
	switch severity {
	case SeverityError:
		r.Metadata.Stats.Errors++
	case SeverityWarning:
		r.Metadata.Stats.Warnings++
	}
}

func (r *Result) filter(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
