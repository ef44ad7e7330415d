// Package importer merges spreadsheet rows into a board document.
//
// A run resolves the target swimlane once, creating it when no existing
// swimlane matches, then turns every data row into a card placed in that
// swimlane. Row problems are collected in the Result; only a failing row
// source stops the run.
package importer

import (
	"context"
	"strings"

	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/ident"
	"github.com/agentstation/wekanimport/pkg/logging"
	"github.com/agentstation/wekanimport/pkg/resolver"
	"github.com/agentstation/wekanimport/pkg/sheet"
	"github.com/agentstation/wekanimport/pkg/synth"
	"github.com/agentstation/wekanimport/pkg/translate"
)

// Importer merges rows into board documents. It holds no per-run state and
// may be reused.
type Importer struct {
	generator  ident.Generator
	headerRows int
	labels     bool
}

// New creates an Importer with options.
func New(opts ...Option) (*Importer, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Importer{
		generator:  options.generator,
		headerRows: options.headerRows,
		labels:     options.labels,
	}, nil
}

// Run merges every data row of rows into doc under the swimlane named
// swimlane. doc is modified in place. When rows fails mid-way the partial
// result is returned together with the error.
func (i *Importer) Run(ctx context.Context, doc *board.Document, rows sheet.Source, swimlane string) (*Result, error) {
	if doc == nil {
		return nil, errors.NewValidationError("document", nil, "cannot be nil")
	}
	if rows == nil {
		return nil, errors.NewValidationError("rows", nil, "cannot be nil")
	}
	if strings.TrimSpace(swimlane) == "" {
		return nil, errors.NewValidationError("swimlane", swimlane, "cannot be empty")
	}

	ctx = logging.WithSwimlane(ctx, swimlane)
	logger := logging.FromContext(ctx)
	result := NewResult()

	// Ids already present in the document are never handed out again.
	s := synth.New(ident.Unique(i.generator, doc.HasID))

	lane, err := i.resolveSwimlane(ctx, doc, s, swimlane)
	if err != nil {
		return nil, err
	}
	result.Swimlane = lane

	tr := translate.New(doc, translate.WithLabels(i.labels))
	stats := &result.Metadata.Stats
	for rows.Next() {
		row := rows.Row()
		stats.RowsRead++
		if stats.RowsRead <= i.headerRows {
			stats.HeaderRows++
			continue
		}

		translation, err := tr.Translate(ctx, row)
		if errors.Is(err, translate.ErrBlankRow) {
			logger.Debug().Int("row", row.Number).Msg("Skipping blank row")
			stats.RowsSkipped++
			continue
		}
		if err != nil {
			logger.Warn().Err(err).Int("row", row.Number).Msg("Row not imported")
			result.addIssue(row.Number, SeverityError, err)
			stats.RowsSkipped++
			continue
		}
		for _, warning := range translation.Warnings {
			logger.Warn().Err(warning).Int("row", row.Number).Msg("Row imported with warning")
			result.addIssue(row.Number, SeverityWarning, warning)
		}

		translation.Fields.SwimlaneID = lane.ID
		card := s.NewCard(translation.Fields)
		if err := doc.AppendCard(card); err != nil {
			result.addIssue(row.Number, SeverityError, err)
			stats.RowsSkipped++
			continue
		}
		result.CardIDs = append(result.CardIDs, card.ID)
		stats.CardsCreated++
	}
	result.Finalize()

	if err := rows.Err(); err != nil {
		return result, err
	}

	logger.Info().
		Str("swimlane_id", lane.ID).
		Bool("swimlane_created", lane.Created).
		Int("rows", stats.RowsRead).
		Int("cards", stats.CardsCreated).
		Int("skipped", stats.RowsSkipped).
		Dur("duration", result.Metadata.Duration).
		Msg("Import completed")

	return result, nil
}

// resolveSwimlane finds the swimlane named title or appends a new one.
func (i *Importer) resolveSwimlane(ctx context.Context, doc *board.Document, s *synth.Synthesizer, title string) (SwimlaneOutcome, error) {
	logger := logging.FromContext(ctx)

	matches := resolver.Matches(doc.Swimlanes, title)
	if len(matches) > 0 {
		if len(matches) > 1 {
			logger.Warn().
				Int("candidates", len(matches)).
				Str("chosen", matches[0]).
				Msg("Swimlane name matches more than one swimlane, using the first")
		}
		outcome := SwimlaneOutcome{ID: matches[0]}
		for _, existing := range doc.Swimlanes {
			if existing.ID == outcome.ID {
				outcome.Title = existing.Title
				break
			}
		}
		logger.Debug().Str("swimlane_id", outcome.ID).Msg("Using existing swimlane")
		return outcome, nil
	}

	lane := s.NewSwimlane(title)
	if err := doc.AppendSwimlane(lane); err != nil {
		return SwimlaneOutcome{}, err
	}
	logger.Info().Str("swimlane_id", lane.ID).Msg("Created swimlane")
	return SwimlaneOutcome{ID: lane.ID, Title: lane.Title, Created: true}, nil
}
