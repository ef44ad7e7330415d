// Package translate turns one spreadsheet row into the fields of a new card,
// resolving the names it carries against a board document.
//
// Columns:
//
//	0 title        required
//	1 description
//	2 assignee     user full name, optional
//	3 start date
//	4 due date
//	5 list         list title, required
//	6 labels       comma separated label names, optional
package translate

import (
	"context"
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/logging"
	"github.com/agentstation/wekanimport/pkg/resolver"
	"github.com/agentstation/wekanimport/pkg/sheet"
	"github.com/agentstation/wekanimport/pkg/synth"
)

// ErrBlankRow is returned for rows without any content.
var ErrBlankRow = errors.New("blank row")

// Reference kinds used in UnresolvedReferenceError.
const (
	KindList  = "list"
	KindUser  = "user"
	KindLabel = "label"
)

// Translation is the outcome of translating one row.
type Translation struct {
	Fields synth.CardFields
	// Warnings are problems that did not stop the card from being built:
	// an unknown assignee or label, or an unreadable date.
	Warnings []error
}

// Translator maps rows onto a board document's lists, users and labels.
// Those collections do not change during an import, so each name is resolved
// once per Translator and ambiguity is logged only the first time.
type Translator struct {
	doc    *board.Document
	labels bool
	cache  *gocache.Cache
}

// resolution is a memoized lookup result, misses included.
type resolution struct {
	id string
	ok bool
}

// Option configures a Translator.
type Option func(*Translator)

// WithLabels enables or disables reading the labels column.
func WithLabels(enabled bool) Option {
	return func(t *Translator) {
		t.labels = enabled
	}
}

// New returns a Translator resolving against doc.
func New(doc *board.Document, opts ...Option) *Translator {
	t := &Translator{
		doc:    doc,
		labels: true,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate builds card fields from row. A non-nil error means the row must
// not become a card: ErrBlankRow, a *errors.ValidationError for a missing
// title or a *errors.UnresolvedReferenceError for an unknown list. The
// swimlane is left for the caller to set.
func (t *Translator) Translate(ctx context.Context, row sheet.Row) (*Translation, error) {
	if row.IsBlank() {
		return nil, ErrBlankRow
	}
	ctx = logging.WithRow(ctx, row.Number)

	title := row.Text(constants.ColumnTitle)
	if title == "" {
		return nil, errors.NewValidationError("title", row.Number,
			fmt.Sprintf("row %d: card title is empty", row.Number))
	}

	listName := row.Text(constants.ColumnList)
	listID, ok := lookup(ctx, t.cache, t.doc.Lists, KindList, listName)
	if !ok {
		return nil, t.unresolved(row.Number, KindList, listName, resolver.Names(t.doc.Lists))
	}

	tr := &Translation{
		Fields: synth.CardFields{
			Title:        title,
			Description:  row.Text(constants.ColumnDescription),
			Assignees:    []string{},
			ListID:       listID,
			LabelIDs:     []string{},
			CustomFields: []board.CustomFieldValue{},
		},
	}

	if name := row.Text(constants.ColumnAssignee); name != "" {
		if id, ok := lookup(ctx, t.cache, t.doc.Users, KindUser, name); ok {
			tr.Fields.Assignees = append(tr.Fields.Assignees, id)
		} else {
			tr.Warnings = append(tr.Warnings, t.unresolved(row.Number, KindUser, name, resolver.Names(t.doc.Users)))
		}
	}

	var err error
	if tr.Fields.StartAt, err = row.Time(constants.ColumnStartAt); err != nil {
		tr.Warnings = append(tr.Warnings, err)
	}
	if tr.Fields.DueAt, err = row.Time(constants.ColumnDueAt); err != nil {
		tr.Warnings = append(tr.Warnings, err)
	}

	if t.labels {
		tr.Fields.LabelIDs, tr.Warnings = t.resolveLabels(ctx, row, tr.Warnings)
	}

	return tr, nil
}

func (t *Translator) resolveLabels(ctx context.Context, row sheet.Row, warnings []error) ([]string, []error) {
	ids := []string{}
	seen := make(map[string]struct{})
	for _, name := range strings.Split(row.Text(constants.ColumnLabels), constants.LabelSeparator) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := lookup(ctx, t.cache, t.doc.Labels, KindLabel, name)
		if !ok {
			warnings = append(warnings, t.unresolved(row.Number, KindLabel, name, resolver.Names(t.doc.Labels)))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, warnings
}

func (t *Translator) unresolved(row int, kind, name string, candidates []string) error {
	return errors.NewUnresolvedReferenceError(row, kind, name,
		resolver.Suggest(name, candidates, constants.MaxSuggestions))
}

// lookup resolves name and logs when more than one entity would have matched.
func lookup[T resolver.Entity](ctx context.Context, cache *gocache.Cache, items []T, kind, name string) (string, bool) {
	key := kind + ":" + resolver.Slug(name)
	if v, found := cache.Get(key); found {
		r := v.(resolution)
		return r.id, r.ok
	}

	matches := resolver.Matches(items, name)
	if len(matches) == 0 {
		cache.SetDefault(key, resolution{})
		return "", false
	}
	cache.SetDefault(key, resolution{id: matches[0], ok: true})
	if len(matches) > 1 {
		logging.FromContext(ctx).Warn().
			Str("kind", kind).
			Str("name", name).
			Int("candidates", len(matches)).
			Str("chosen", matches[0]).
			Msg("Name matches more than one entity, using the first")
	}
	return matches[0], true
}
