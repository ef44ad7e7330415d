// Package resolver matches free-text names from the tabular source against
// the entities of a board document.
//
// Names are compared in slug form. A candidate matches when the query slug is
// a substring of the candidate slug, and the first match in collection order
// wins. The looseness is intentional: "sprint" finds "Sprint 1". It also
// over-matches ("ana" finds "Banana Sprint"), so callers that care can use
// Matches to detect more than one hit.
package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug reduces name to its comparable form: compatibility decomposed,
// accents stripped, case folded and with every rune that is not a letter or
// digit removed.
//
//	Slug("Jane Doe") == "janedoe"
//	Slug("Tâche #3") == "tache3"
func Slug(name string) string {
	// Casers carry state, so the chain is built per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), cases.Fold())
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
