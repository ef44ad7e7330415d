package wekanimport

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/save"
)

// LoadDocument reads and parses the board export at path.
func LoadDocument(path string) (*board.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("board document", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	doc, err := board.Decode(f)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) && parseErr.File == "" {
			parseErr.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Save writes doc to the configured path, or to the configured writer when
// the path is empty or "-".
func Save(doc *board.Document, opts ...save.Option) error {
	options := save.Defaults().Apply(opts...)

	var encodeOpts []board.EncodeOption
	if options.Indent() != "" {
		encodeOpts = append(encodeOpts, board.WithIndent(options.Indent()))
	}

	if options.ToStdout() {
		if options.Writer() == nil {
			return &errors.ConfigError{
				Component: "save",
				Message:   "no output path or writer configured",
			}
		}
		return doc.Encode(options.Writer(), encodeOpts...)
	}

	return writeFile(options.Path(), doc, encodeOpts...)
}

// writeFile encodes doc next to path and renames it into place, so a failed
// write leaves an existing file untouched. An existing file must itself be
// writable and keeps its mode.
func writeFile(path string, doc *board.Document, opts ...board.EncodeOption) error {
	mode := os.FileMode(constants.FilePermissions)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.WrapIO("write", path, errors.New("is a directory"))
		}
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return errors.WrapIO("write", path, err)
		}
		_ = f.Close()
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("write", path, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := doc.Encode(tmp, opts...); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
