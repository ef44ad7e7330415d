package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/agentstation/wekanimport/internal/cmd/emoji"
	"github.com/agentstation/wekanimport/pkg/errors"
)

const testBoard = `{
  "_id": "b1",
  "title": "Tablero",
  "lists": [{"_id": "l1", "title": "Backlog"}, {"_id": "l2", "title": "To Do"}],
  "swimlanes": [{"_id": "s1", "title": "Sprint 1", "archived": false, "type": "swimlane"}],
  "users": [{"_id": "u7", "username": "jane", "profile": {"fullname": "Jane Doe"}}],
  "labels": [],
  "cards": []
}`

const testRows = "Proyecto\n" +
	"title,description,assignee,start,due,list\n" +
	"Fix bug,desc,jane,2023-01-01,2023-01-10,To Do\n" +
	"Write docs,,,,,Backlog\n"

type testApp struct {
	*App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
	rows   string
	board  string
}

func newTestApp(t *testing.T, rows string) *testApp {
	t.Helper()

	dir := t.TempDir()
	rowsPath := filepath.Join(dir, "tasks.csv")
	boardPath := filepath.Join(dir, "board.json")
	require.NoError(t, os.WriteFile(rowsPath, []byte(rows), 0o600))
	require.NoError(t, os.WriteFile(boardPath, []byte(testBoard), 0o600))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app, err := New("1.2.3", "abc123", "2026-01-01", "test",
		WithConfig(&Config{IDFormat: "meteor", Labels: true, NoColor: true, LogFormat: "json", LogOutput: "discard"}),
		WithOutput(stdout, stderr),
	)
	require.NoError(t, err)

	return &testApp{App: app, stdout: stdout, stderr: stderr, dir: dir, rows: rowsPath, board: boardPath}
}

func (ta *testApp) run(args ...string) error {
	return ta.Execute(context.Background(), args)
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	ta := newTestApp(t, testRows)

	assert.Equal(t, "1.2.3", ta.Version())
	assert.Equal(t, "abc123", ta.Commit())
	assert.Equal(t, "2026-01-01", ta.Date())
	assert.Equal(t, "test", ta.BuiltBy())
	assert.NotNil(t, ta.Logger())
	assert.NotNil(t, ta.Config())
}

// TestApp_Client_Singleton verifies that Client() returns the same instance.
func TestApp_Client_Singleton(t *testing.T) {
	ta := newTestApp(t, testRows)

	c1, err := ta.Client()
	require.NoError(t, err)
	c2, err := ta.Client()
	require.NoError(t, err)
	assert.Same(t, c1, c2)
}

// TestApp_Client_InvalidIDFormat verifies the id format is validated.
func TestApp_Client_InvalidIDFormat(t *testing.T) {
	ta := newTestApp(t, testRows)
	ta.config.IDFormat = "snowflake"

	_, err := ta.Client()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestApp_WithConfigNil(t *testing.T) {
	_, err := New("dev", "", "", "", WithConfig(nil))
	assert.Error(t, err)
}

func TestExecute_ImportToStdout(t *testing.T) {
	ta := newTestApp(t, testRows)

	err := ta.run("-f", ta.rows, "-j", ta.board, "-s", "Backlog", "--format", "json")
	require.NoError(t, err)

	merged := ta.stdout.Bytes()
	require.True(t, gjson.ValidBytes(merged), "stdout holds only the merged board")
	assert.Equal(t, int64(2), gjson.GetBytes(merged, "swimlanes.#").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(merged, "cards.#").Int())
	assert.Equal(t, "u7", gjson.GetBytes(merged, "cards.0.assignees.0").String())
	assert.Equal(t, "l2", gjson.GetBytes(merged, "cards.0.listId").String())

	stderr := ta.stderr.String()
	assert.Contains(t, stderr, emoji.Success+" Import succeeded")
	assert.Contains(t, stderr, `Imported 2 cards into new swimlane "Backlog"`)

	dec := json.NewDecoder(bytes.NewReader(ta.stderr.Bytes()))
	var report map[string]any
	require.NoError(t, dec.Decode(&report))
	assert.Equal(t, float64(2), report["cards_created"])
	assert.Equal(t, "stdout", report["output"])
}

func TestExecute_ImportToFile(t *testing.T) {
	ta := newTestApp(t, testRows)
	out := filepath.Join(ta.dir, "merged.json")

	err := ta.run("--file", ta.rows, "--json", ta.board, "--swimlane", "sprint", "--output", out, "--pretty", "--format", "yaml")
	require.NoError(t, err)
	assert.Empty(t, ta.stdout.String())

	merged, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(merged, "swimlanes.#").Int(), "existing swimlane reused")
	assert.Equal(t, "s1", gjson.GetBytes(merged, "cards.1.swimlaneId").String())
	assert.Contains(t, string(merged), "\n  \"lists\"")

	assert.Contains(t, ta.stderr.String(), "cards_created: 2")
	assert.Contains(t, ta.stderr.String(), "merged.json")
}

func TestExecute_RowIssuesDoNotFail(t *testing.T) {
	ta := newTestApp(t, testRows+"Lost,,,,,Nowhere\n")

	err := ta.run("-f", ta.rows, "-j", ta.board, "-s", "Backlog", "--format", "table")
	require.NoError(t, err)

	stderr := ta.stderr.String()
	assert.Contains(t, stderr, emoji.Warning+" Import completed with skipped rows")
	assert.Contains(t, stderr, "unresolved list")
	assert.Contains(t, stderr, "Nowhere")
	assert.Equal(t, int64(2), gjson.GetBytes(ta.stdout.Bytes(), "cards.#").Int())
}

func TestExecute_DryRun(t *testing.T) {
	ta := newTestApp(t, testRows)
	out := filepath.Join(ta.dir, "merged.json")

	err := ta.run("-f", ta.rows, "-j", ta.board, "-s", "Backlog", "-o", out, "--dry-run", "--quiet")
	require.NoError(t, err)

	assert.NoFileExists(t, out)
	assert.Empty(t, ta.stdout.String())
	stderr := ta.stderr.String()
	assert.Contains(t, stderr, emoji.Info+" Dry run, merged document not written")
	assert.Contains(t, stderr, "destination: "+out)
	assert.Contains(t, stderr, "Import succeeded")
}

func TestExecute_Failures(t *testing.T) {
	tests := []struct {
		name  string
		args  func(ta *testApp) []string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing board document",
			args: func(ta *testApp) []string {
				return []string{"-f", ta.rows, "-j", filepath.Join(ta.dir, "missing.json"), "-s", "Backlog"}
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsNotFound(err))
			},
		},
		{
			name: "missing swimlane",
			args: func(ta *testApp) []string {
				return []string{"-f", ta.rows, "-j", ta.board}
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidationError(err))
			},
		},
		{
			name: "output directory does not exist",
			args: func(ta *testApp) []string {
				return []string{"-f", ta.rows, "-j", ta.board, "-s", "Backlog", "-o", filepath.Join(ta.dir, "no", "such", "dir.json")}
			},
			check: func(t *testing.T, err error) {
				var ioErr *errors.IOError
				assert.True(t, errors.As(err, &ioErr))
			},
		},
		{
			name: "invalid summary format",
			args: func(ta *testApp) []string {
				return []string{"-f", ta.rows, "-j", ta.board, "-s", "Backlog", "--format", "xml"}
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidationError(err))
			},
		},
		{
			name: "unexpected argument",
			args: func(ta *testApp) []string {
				return []string{"extra"}
			},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, testRows)

			err := ta.run(tt.args(ta)...)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, ta.stdout.String())
		})
	}
}

func TestExecute_BannerOnFailure(t *testing.T) {
	ta := newTestApp(t, testRows)

	err := ta.run("-f", ta.rows, "-j", filepath.Join(ta.dir, "missing.json"), "-s", "Backlog")
	require.Error(t, err)
	assert.Contains(t, ta.stderr.String(), emoji.Error+" Import failed")
	assert.Contains(t, ta.stderr.String(), "Export the board from Wekan")
}

func TestExecute_HelpExplainsDayFirstDates(t *testing.T) {
	ta := newTestApp(t, testRows)

	require.NoError(t, ta.run("--help"))
	assert.Contains(t, ta.stdout.String(), "DD/MM/YYYY, so 01/10/2023 is")
	assert.Contains(t, ta.stdout.String(), "1 October 2023")
}

func TestExecute_Version(t *testing.T) {
	ta := newTestApp(t, testRows)

	require.NoError(t, ta.run("version"))
	assert.Contains(t, ta.stdout.String(), "wekanimport version 1.2.3")
	assert.Contains(t, ta.stdout.String(), "commit: abc123")

	ta.stdout.Reset()
	require.NoError(t, ta.run("version", "--short"))
	assert.Equal(t, "1.2.3\n", ta.stdout.String())
}

func TestExecute_Man(t *testing.T) {
	ta := newTestApp(t, testRows)

	require.NoError(t, ta.run("man"))
	assert.Contains(t, ta.stdout.String(), "WEKANIMPORT")
	assert.Contains(t, ta.stdout.String(), "swimlane")
}
