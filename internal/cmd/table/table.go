// Package table converts import results into rows for tabular CLI output.
package table

import (
	"strconv"
	"time"

	"github.com/agentstation/wekanimport/internal/cmd/emoji"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/importer"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// SummaryToTableData converts the counters of a run into a property table.
// destination is where the merged document went; empty means standard output.
func SummaryToTableData(result *importer.Result, destination string, dryRun bool) Data {
	stats := result.Metadata.Stats

	swimlane := result.Swimlane.Title
	if result.Swimlane.Created {
		swimlane += " (new)"
	}
	switch {
	case dryRun:
		destination = "not written (dry run)"
	case destination == "" || destination == "-":
		destination = "stdout"
	}

	rows := [][]string{
		{"Swimlane", swimlane},
		{"Swimlane ID", orDash(result.Swimlane.ID)},
		{"Rows Read", strconv.Itoa(stats.RowsRead)},
		{"Header Rows", strconv.Itoa(stats.HeaderRows)},
		{"Cards Created", strconv.Itoa(stats.CardsCreated)},
		{"Rows Skipped", strconv.Itoa(stats.RowsSkipped)},
		{"Errors", strconv.Itoa(stats.Errors)},
		{"Warnings", strconv.Itoa(stats.Warnings)},
		{"Duration", result.Metadata.Duration.Round(time.Microsecond).String()},
		{"Output", destination},
	}

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// IssuesToTableData lists row issues, one per line.
func IssuesToTableData(issues []importer.Issue) Data {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			strconv.Itoa(issue.Row),
			SeverityIcon(issue.Severity),
			IssueKind(issue.Err),
			issue.Error(),
		})
	}

	return Data{
		Headers:         []string{"Row", "", "Kind", "Message"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignCenter, AlignLeft, AlignLeft},
	}
}

// SeverityIcon returns the symbol shown for an issue severity.
func SeverityIcon(severity importer.Severity) string {
	if severity == importer.SeverityError {
		return emoji.Error
	}
	return emoji.Warning
}

// IssueKind names the class of problem behind err.
func IssueKind(err error) string {
	var unresolved *errors.UnresolvedReferenceError
	var validation *errors.ValidationError
	var parse *errors.ParseError
	switch {
	case errors.As(err, &unresolved):
		return "unresolved " + unresolved.Kind
	case errors.As(err, &validation):
		return "invalid " + validation.Field
	case errors.As(err, &parse):
		return "unparsable " + parse.Format
	default:
		return "error"
	}
}

func orDash(s string) string {
	if s == "" {
		return emoji.Optional
	}
	return s
}
