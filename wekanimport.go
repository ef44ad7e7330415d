// Package wekanimport merges spreadsheet rows into a Wekan board export.
//
// A run loads the board document, opens the spreadsheet, imports every data
// row as a card in one swimlane and writes the merged document to a file or
// to standard output:
//
//	client, err := wekanimport.New()
//	result, err := client.Run(ctx, wekanimport.Request{
//	    File:     "tasks.xlsx",
//	    JSON:     "board.json",
//	    Swimlane: "Sprint 1",
//	    Output:   "merged.json",
//	})
package wekanimport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/importer"
	"github.com/agentstation/wekanimport/pkg/logging"
	"github.com/agentstation/wekanimport/pkg/save"
	"github.com/agentstation/wekanimport/pkg/sheet"
)

// Client runs imports and notifies hooks about the entities they add.
type Client interface {
	// Run performs one import described by req.
	Run(ctx context.Context, req Request) (*importer.Result, error)

	// OnSwimlaneAdded registers a callback for created swimlanes
	OnSwimlaneAdded(SwimlaneAddedHook)

	// OnCardAdded registers a callback for created cards
	OnCardAdded(CardAddedHook)
}

// Request describes one import.
type Request struct {
	File     string // spreadsheet with the rows to import
	JSON     string // board export to merge into
	Swimlane string // swimlane receiving every card
	Output   string // destination; "" or "-" writes to the client's stdout
	Sheet    string // worksheet name, "" for the active sheet
	Pretty   bool   // indent the written document
	DryRun   bool   // merge in memory but write nothing
}

// Validate checks that the required fields are set.
func (r Request) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"file", r.File},
		{"json", r.JSON},
		{"swimlane", r.Swimlane},
	} {
		if strings.TrimSpace(f.value) == "" {
			return errors.NewValidationError(f.name, f.value, "is required")
		}
	}
	return nil
}

// client is the internal implementation of the Client interface
type client struct {
	mu     sync.Mutex
	config *config
	hooks  *hooks
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	if err := c.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	return c, nil
}

// Run loads the board document, imports the rows and writes the result.
// Both files are closed before Run returns. A missing board document stops
// the run before any merge work; a failing write loses the merged document.
func (c *client) Run(ctx context.Context, req Request) (*importer.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx = logging.WithSource(ctx, req.File)
	logger := logging.FromContext(ctx)

	doc, err := LoadDocument(req.JSON)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("board", doc.Title).
		Int("lists", len(doc.Lists)).
		Int("swimlanes", len(doc.Swimlanes)).
		Int("users", len(doc.Users)).
		Int("cards", len(doc.Cards)).
		Msg("Loaded board document")

	var sheetOpts []sheet.Option
	if req.Sheet != "" {
		sheetOpts = append(sheetOpts, sheet.WithSheet(req.Sheet))
	}
	rows, err := sheet.Open(req.File, sheetOpts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("Closing tabular source")
		}
	}()

	imp, err := importer.New(
		importer.WithGenerator(c.config.generator),
		importer.WithLabelColumn(c.config.labels),
	)
	if err != nil {
		return nil, err
	}

	result, err := imp.Run(ctx, doc, rows, req.Swimlane)
	if err != nil {
		return result, err
	}
	c.hooks.triggerImport(doc, result)

	if req.DryRun {
		logger.Info().Msg("Dry run, merged document not written")
		return result, nil
	}

	saveOpts := []save.Option{save.WithPath(req.Output), save.WithWriter(c.stdout())}
	if req.Pretty {
		saveOpts = append(saveOpts, save.WithIndent(c.config.indent))
	}
	if err := Save(doc, saveOpts...); err != nil {
		return result, err
	}
	return result, nil
}

func (c *client) stdout() io.Writer {
	if c.config.stdout != nil {
		return c.config.stdout
	}
	return os.Stdout
}
