package sheet

import (
	"path/filepath"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/wekanimport/pkg/errors"
)

type xlsxSource struct {
	path string
	file *excelize.File
	rows *excelize.Rows
	n    int
	row  Row
	err  error
}

func openXLSX(path string, o *options) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}

	name := o.sheet
	if name == "" {
		name = f.GetSheetName(f.GetActiveSheetIndex())
	} else if !slices.Contains(f.GetSheetList(), name) {
		_ = f.Close()
		return nil, errors.NewNotFoundError("sheet", name)
	}

	rows, err := f.Rows(name)
	if err != nil {
		_ = f.Close()
		return nil, errors.WrapIO("read", path, err)
	}
	return &xlsxSource{path: path, file: f, rows: rows}, nil
}

func (s *xlsxSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			s.err = errors.WrapIO("read", s.path, err)
		}
		return false
	}
	// Raw values keep dates as serial numbers instead of display strings.
	cells, err := s.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		s.err = errors.WrapIO("read", s.path, err)
		return false
	}
	s.n++
	s.row = Row{Number: s.n, Source: filepath.Base(s.path), Cells: cells}
	return true
}

func (s *xlsxSource) Row() Row   { return s.row }
func (s *xlsxSource) Err() error { return s.err }

func (s *xlsxSource) Close() error {
	rowsErr := s.rows.Close()
	if err := s.file.Close(); err != nil {
		return errors.WrapIO("close", s.path, err)
	}
	return errors.WrapIO("close", s.path, rowsErr)
}
