package board

import (
	"testing"
)

// MustParse parses raw JSON into a Document and fails the test on error.
func MustParse(t testing.TB, raw string) *Document {
	t.Helper()

	doc, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse board document: %v", err)
	}
	return doc
}
