package sheet

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/wekanimport/pkg/errors"
)

type csvSource struct {
	path   string
	file   *os.File
	reader *csv.Reader
	n      int
	row    Row
	err    error
}

func openCSV(path string) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	r := csv.NewReader(stripUTF8BOM(bufio.NewReader(f)))
	r.FieldsPerRecord = -1
	return &csvSource{path: path, file: f, reader: r}, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func (s *csvSource) Next() bool {
	if s.err != nil {
		return false
	}
	record, err := s.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = errors.WrapParse("csv", s.path, err)
		return false
	}
	s.n++
	s.row = Row{Number: s.n, Source: filepath.Base(s.path), Cells: record}
	return true
}

func (s *csvSource) Row() Row   { return s.row }
func (s *csvSource) Err() error { return s.err }

func (s *csvSource) Close() error {
	return errors.WrapIO("close", s.path, s.file.Close())
}
