package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/errors"
)

// Row is one record of a source.
type Row struct {
	Number int    // 1-based position in the source, header rows included
	Source string // file name, for messages
	Cells  []string
}

// Len returns the number of cells present. Trailing empty cells may be absent.
func (r Row) Len() int {
	return len(r.Cells)
}

// Text returns cell i with surrounding space trimmed, or "" when absent.
func (r Row) Text(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i])
}

// IsBlank reports whether every cell is empty.
func (r Row) IsBlank() bool {
	for i := range r.Cells {
		if r.Text(i) != "" {
			return false
		}
	}
	return true
}

// Time parses cell i as a date. Empty cells give nil. Numbers are read as
// spreadsheet serial dates; text must match one of constants.DateLayouts.
// Values are taken as UTC with no zone conversion.
func (r Row) Time(i int) (*time.Time, error) {
	v := r.Text(i)
	if v == "" {
		return nil, nil
	}

	for _, layout := range constants.DateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return &t, nil
		}
	}

	return nil, &errors.ParseError{
		Format:  "date",
		File:    r.Source,
		Line:    r.Number,
		Column:  i + 1,
		Message: fmt.Sprintf("cannot read %q as a date", v),
	}
}
