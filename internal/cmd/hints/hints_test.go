package hints

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/wekanimport/pkg/errors"
)

func TestDefaultHints(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want []string
	}{
		{
			name: "missing board",
			ctx:  Context{Err: errors.NewNotFoundError("board document", "b.json")},
			want: []string{"💡 Export the board from Wekan (Board menu, Export board) and pass the file with --json"},
		},
		{
			name: "missing spreadsheet",
			ctx:  Context{Err: errors.NewNotFoundError("tabular source", "t.xlsx")},
			want: []string{"💡 Check the --file path"},
		},
		{
			name: "missing sheet",
			ctx:  Context{Err: errors.NewNotFoundError("sheet", "Tasks")},
			want: []string{"💡 Pick an existing worksheet with --sheet, or omit it to read the active sheet"},
		},
		{
			name: "output not writable",
			ctx: Context{
				Err:    errors.WrapIO("write", "/ro/merged.json", fs.ErrPermission),
				File:   "my tasks.xlsx",
				JSON:   "board.json",
				Output: "/ro/merged.json",
			},
			want: []string{
				"💡 The merged board was not written; choose a writable --output path",
				"💡 Or print the merged board to standard output\n   Run: wekanimport -f \"my tasks.xlsx\" -j board.json -s <swimlane> > merged.json",
			},
		},
		{
			name: "missing flag",
			ctx:  Context{Err: errors.NewValidationError("swimlane", "", "is required")},
			want: []string{"💡 Pass --swimlane or set WEKANIMPORT_SWIMLANE"},
		},
		{
			name: "bad board json",
			ctx:  Context{Err: errors.NewParseError("json", "b.json", "not valid", nil)},
			want: []string{"💡 The board document must be a Wekan JSON export"},
		},
		{
			name: "unsupported spreadsheet",
			ctx:  Context{Err: fmt.Errorf("%w: .ods", errors.ErrUnsupportedFormat)},
			want: []string{"💡 Save the spreadsheet as .xlsx or .csv"},
		},
		{
			name: "no guidance",
			ctx:  Context{Err: errors.New("boom")},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strings(Default().GetHints(tt.ctx)))
		})
	}
}

func TestRegistryLimitAndDedupe(t *testing.T) {
	r := NewRegistry(2)
	same := ProviderFunc(func(Context) []*Hint { return []*Hint{New("a")} })
	r.Register(same)
	r.Register(same)
	r.Register(ProviderFunc(func(Context) []*Hint { return []*Hint{New("b"), New("c")} }))

	got := Strings(r.GetHints(Context{}))
	assert.Equal(t, []string{"💡 a", "💡 b"}, got)
}
