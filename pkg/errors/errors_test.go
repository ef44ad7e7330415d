package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/wekanimport/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "board document",
			ID:       "board.json",
		}
		assert.Equal(t, `board document "board.json" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("tabular source", "rows.xlsx")
		wrapped := fmt.Errorf("opening rows: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "title",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field title: cannot be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("", nil, "bad row")
		assert.Equal(t, "validation failed: bad row", err.Error())
	})
}

func TestUnresolvedReferenceError(t *testing.T) {
	t.Run("without suggestions", func(t *testing.T) {
		err := pkgerrors.NewUnresolvedReferenceError(4, "list", "Doing", nil)
		assert.Equal(t, `row 4: list "Doing" does not match any existing list`, err.Error())
		assert.True(t, pkgerrors.IsUnresolvedReference(err))
		assert.False(t, pkgerrors.IsNotFound(err))
	})

	t.Run("with suggestions", func(t *testing.T) {
		err := pkgerrors.NewUnresolvedReferenceError(7, "list", "Dne", []string{"Done"})
		assert.Contains(t, err.Error(), "did you mean: Done?")
	})
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/out.json", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/out.json")
		assert.False(t, pkgerrors.IsPermissionDenied(err))
	})

	t.Run("permission denied", func(t *testing.T) {
		pathErr := &fs.PathError{Op: "open", Path: "/root/out.json", Err: fs.ErrPermission}
		err := pkgerrors.WrapIO("write", "/root/out.json", pathErr)
		assert.True(t, errors.Is(err, pkgerrors.ErrPermissionDenied))
		assert.True(t, pkgerrors.IsPermissionDenied(err))
	})

	t.Run("wrap helper nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and position", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "json",
			File:    "board.json",
			Line:    10,
			Column:  5,
			Message: "unexpected token",
		}
		assert.Contains(t, err.Error(), "board.json:10:5")
	})

	t.Run("format only", func(t *testing.T) {
		err := pkgerrors.NewParseError("date", "", `cannot parse "tomorrow"`, nil)
		assert.Equal(t, `date parse error: cannot parse "tomorrow"`, err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		wrapped := pkgerrors.WrapParse("csv", "rows.csv", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "csv", parseErr.Format)
		assert.Equal(t, baseErr, parseErr.Unwrap())
	})
}

func TestConfigAndResourceErrors(t *testing.T) {
	cfg := pkgerrors.NewConfigError("id_format", `unknown format "ulid"`, nil)
	assert.Equal(t, `configuration error in id_format: unknown format "ulid"`, cfg.Error())

	base := errors.New("boom")
	res := pkgerrors.WrapResource("append", "card", "abc", base)
	var resErr *pkgerrors.ResourceError
	require.True(t, errors.As(res, &resErr))
	assert.Equal(t, "failed to append card abc: boom", resErr.Error())
	assert.True(t, errors.Is(res, base))
}
