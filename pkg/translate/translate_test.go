package translate_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/logging"
	"github.com/agentstation/wekanimport/pkg/sheet"
	"github.com/agentstation/wekanimport/pkg/translate"
)

const boardJSON = `{
  "title": "Board",
  "lists": [
    {"_id": "l1", "title": "Backlog"},
    {"_id": "l2", "title": "To Do"},
    {"_id": "l3", "title": "Done"}
  ],
  "swimlanes": [{"_id": "s1", "title": "Sprint 1", "type": "swimlane"}],
  "users": [
    {"_id": "u1", "username": "admin", "profile": {"fullname": "Admin"}},
    {"_id": "u7", "username": "jane", "profile": {"fullname": "Jane Doe"}}
  ],
  "labels": [
    {"_id": "lb1", "name": "bug", "color": "red"},
    {"_id": "lb2", "name": "feature", "color": "green"},
    {"_id": "lb3", "name": "bugfix", "color": "orange"}
  ],
  "cards": []
}`

func row(n int, cells ...string) sheet.Row {
	return sheet.Row{Number: n, Source: "tasks.xlsx", Cells: cells}
}

func TestTranslate(t *testing.T) {
	doc := board.MustParse(t, boardJSON)
	tr := translate.New(doc)

	got, err := tr.Translate(context.Background(),
		row(3, "Fix bug", "desc", "jane", "2023-01-01", "2023-01-10", "To Do"))
	require.NoError(t, err)
	assert.Empty(t, got.Warnings)

	f := got.Fields
	assert.Equal(t, "Fix bug", f.Title)
	assert.Equal(t, "desc", f.Description)
	assert.Equal(t, []string{"u7"}, f.Assignees)
	assert.Equal(t, "l2", f.ListID)
	assert.Empty(t, f.SwimlaneID)
	assert.Equal(t, []string{}, f.LabelIDs)
	assert.NotNil(t, f.CustomFields)
	require.NotNil(t, f.StartAt)
	require.NotNil(t, f.DueAt)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *f.StartAt)
	assert.Equal(t, time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), *f.DueAt)
}

func TestTranslateExcludedRows(t *testing.T) {
	doc := board.MustParse(t, boardJSON)
	tr := translate.New(doc)
	ctx := context.Background()

	t.Run("blank", func(t *testing.T) {
		_, err := tr.Translate(ctx, row(4, "", " ", ""))
		assert.ErrorIs(t, err, translate.ErrBlankRow)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := tr.Translate(ctx, row(5, "", "desc", "", "", "", "To Do"))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "row 5")
	})

	t.Run("unknown list", func(t *testing.T) {
		_, err := tr.Translate(ctx, row(6, "Ship it", "", "", "", "", "Doen"))
		require.Error(t, err)
		assert.True(t, errors.IsUnresolvedReference(err))

		var ref *errors.UnresolvedReferenceError
		require.ErrorAs(t, err, &ref)
		assert.Equal(t, 6, ref.Row)
		assert.Equal(t, translate.KindList, ref.Kind)
		assert.Equal(t, "Doen", ref.Name)
		assert.Equal(t, []string{"Done"}, ref.Suggestions)
	})

	t.Run("missing list", func(t *testing.T) {
		_, err := tr.Translate(ctx, row(7, "No list"))
		assert.True(t, errors.IsUnresolvedReference(err))
	})
}

func TestTranslateWarnings(t *testing.T) {
	doc := board.MustParse(t, boardJSON)
	tr := translate.New(doc)

	got, err := tr.Translate(context.Background(),
		row(3, "Fix bug", "", "Someone Else", "soon", "", "Backlog"))
	require.NoError(t, err)

	assert.Equal(t, []string{}, got.Fields.Assignees)
	assert.Equal(t, "l1", got.Fields.ListID)
	assert.Nil(t, got.Fields.StartAt)
	assert.Nil(t, got.Fields.DueAt)

	require.Len(t, got.Warnings, 2)
	assert.True(t, errors.IsUnresolvedReference(got.Warnings[0]))
	var parseErr *errors.ParseError
	assert.ErrorAs(t, got.Warnings[1], &parseErr)
	assert.Equal(t, 4, parseErr.Column)
}

func TestTranslateLabels(t *testing.T) {
	doc := board.MustParse(t, boardJSON)
	ctx := context.Background()
	r := row(3, "Fix bug", "", "", "", "", "To Do", "feature, bug, , nope, Feature")

	got, err := translate.New(doc).Translate(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"lb2", "lb1"}, got.Fields.LabelIDs)
	require.Len(t, got.Warnings, 1)

	var ref *errors.UnresolvedReferenceError
	require.ErrorAs(t, got.Warnings[0], &ref)
	assert.Equal(t, translate.KindLabel, ref.Kind)
	assert.Equal(t, "nope", ref.Name)

	got, err = translate.New(doc, translate.WithLabels(false)).Translate(ctx, r)
	require.NoError(t, err)
	assert.Empty(t, got.Fields.LabelIDs)
	assert.Empty(t, got.Warnings)
}

func TestTranslateLogsAmbiguousMatch(t *testing.T) {
	doc := board.MustParse(t, boardJSON)
	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	got, err := translate.New(doc).Translate(ctx,
		row(9, "Fix bug", "", "", "", "", "To Do", "bug"))
	require.NoError(t, err)

	// "bug" is a substring of both "bug" and "bugfix"; document order wins.
	assert.Equal(t, []string{"lb1"}, got.Fields.LabelIDs)
	logger.AssertContains(t, `"candidates":2`)
	logger.AssertContains(t, `"row":9`)
	logger.AssertContains(t, "more than one entity")
}

func TestTranslateMemoizesLookups(t *testing.T) {
	doc := board.MustParse(t, boardJSON)
	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)
	tr := translate.New(doc)

	for n := 3; n <= 5; n++ {
		got, err := tr.Translate(ctx, row(n, "Card", "", "nobody", "", "", "To Do", "bug"))
		require.NoError(t, err)
		assert.Equal(t, []string{"lb1"}, got.Fields.LabelIDs)
		assert.Equal(t, "l2", got.Fields.ListID)

		// Misses are memoized too, but every row still reports its own warning.
		require.Len(t, got.Warnings, 1)
		var ref *errors.UnresolvedReferenceError
		require.ErrorAs(t, got.Warnings[0], &ref)
		assert.Equal(t, n, ref.Row)
	}

	ambiguous := 0
	for _, line := range logger.Lines() {
		if strings.Contains(line, "more than one entity") {
			ambiguous++
		}
	}
	assert.Equal(t, 1, ambiguous, "ambiguity is logged once per name")
}
