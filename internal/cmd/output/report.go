package output

import (
	"io"
	"time"

	"github.com/agentstation/wekanimport/internal/cmd/table"
	"github.com/agentstation/wekanimport/pkg/importer"
)

// Report is the structured form of an import run.
type Report struct {
	Swimlane     SwimlaneReport `json:"swimlane" yaml:"swimlane"`
	CardIDs      []string       `json:"card_ids" yaml:"card_ids"`
	RowsRead     int            `json:"rows_read" yaml:"rows_read"`
	HeaderRows   int            `json:"header_rows" yaml:"header_rows"`
	CardsCreated int            `json:"cards_created" yaml:"cards_created"`
	RowsSkipped  int            `json:"rows_skipped" yaml:"rows_skipped"`
	Errors       int            `json:"errors" yaml:"errors"`
	Warnings     int            `json:"warnings" yaml:"warnings"`
	Duration     string         `json:"duration" yaml:"duration"`
	Output       string         `json:"output" yaml:"output"`
	DryRun       bool           `json:"dry_run" yaml:"dry_run"`
	Issues       []IssueReport  `json:"issues" yaml:"issues"`
}

// SwimlaneReport describes the target swimlane.
type SwimlaneReport struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Created bool   `json:"created" yaml:"created"`
}

// IssueReport is one row issue.
type IssueReport struct {
	Row      int    `json:"row" yaml:"row"`
	Severity string `json:"severity" yaml:"severity"`
	Kind     string `json:"kind" yaml:"kind"`
	Message  string `json:"message" yaml:"message"`
}

// NewReport builds a Report from result. destination is the output path,
// empty for standard output.
func NewReport(result *importer.Result, destination string, dryRun bool) Report {
	stats := result.Metadata.Stats
	if destination == "" || destination == "-" {
		destination = "stdout"
	}

	report := Report{
		Swimlane: SwimlaneReport{
			ID:      result.Swimlane.ID,
			Title:   result.Swimlane.Title,
			Created: result.Swimlane.Created,
		},
		CardIDs:      append([]string{}, result.CardIDs...),
		RowsRead:     stats.RowsRead,
		HeaderRows:   stats.HeaderRows,
		CardsCreated: stats.CardsCreated,
		RowsSkipped:  stats.RowsSkipped,
		Errors:       stats.Errors,
		Warnings:     stats.Warnings,
		Duration:     result.Metadata.Duration.Round(time.Microsecond).String(),
		Output:       destination,
		DryRun:       dryRun,
		Issues:       make([]IssueReport, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, IssueReport{
			Row:      issue.Row,
			Severity: string(issue.Severity),
			Kind:     table.IssueKind(issue.Err),
			Message:  issue.Error(),
		})
	}
	return report
}

// FormatResult writes the run summary to w. Tables get a property table
// followed by an issue table when there are issues.
func FormatResult(w io.Writer, format Format, result *importer.Result, destination string, dryRun bool) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, NewReport(result, destination, dryRun))
	case FormatMarkdown:
		return formatMarkdown(w, result, destination, dryRun)
	}

	if err := formatter.Format(w, table.SummaryToTableData(result, destination, dryRun)); err != nil {
		return err
	}
	if len(result.Issues) == 0 {
		return nil
	}
	return formatter.Format(w, table.IssuesToTableData(result.Issues))
}

func formatMarkdown(w io.Writer, result *importer.Result, destination string, dryRun bool) error {
	summary := &MarkdownFormatter{Title: "Import summary"}
	if err := summary.Format(w, table.SummaryToTableData(result, destination, dryRun)); err != nil {
		return err
	}
	if len(result.Issues) == 0 {
		return nil
	}
	issues := &MarkdownFormatter{Title: "Issues"}
	return issues.Format(w, table.IssuesToTableData(result.Issues))
}
