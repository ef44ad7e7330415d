// Package synth builds new board entities. Constructors are pure: they never
// touch a document, the caller appends the result.
package synth

import (
	"time"

	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/ident"
)

// CardFields are the caller supplied parts of a new card.
type CardFields struct {
	Title        string
	Description  string
	Assignees    []string
	StartAt      *time.Time
	DueAt        *time.Time
	ListID       string
	SwimlaneID   string
	LabelIDs     []string
	CustomFields []board.CustomFieldValue
}

// Swimlane returns an active swimlane with the given id and title.
func Swimlane(id, title string) board.Swimlane {
	return board.Swimlane{
		ID:       id,
		Title:    title,
		Archived: false,
		Type:     constants.SwimlaneType,
	}
}

// Card returns an active card with the given id. Slices and dates in f are
// copied, so later changes to them do not reach the card.
func Card(id string, f CardFields) board.Card {
	return board.Card{
		ID:           id,
		Title:        f.Title,
		Description:  f.Description,
		Assignees:    cloneSlice(f.Assignees),
		StartAt:      cloneTime(f.StartAt),
		DueAt:        cloneTime(f.DueAt),
		ListID:       f.ListID,
		SwimlaneID:   f.SwimlaneID,
		LabelIDs:     cloneSlice(f.LabelIDs),
		CustomFields: cloneSlice(f.CustomFields),
		Archived:     false,
	}
}

// Synthesizer pairs the constructors with an id generator.
type Synthesizer struct {
	gen ident.Generator
}

// New returns a Synthesizer drawing ids from gen.
func New(gen ident.Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// NewSwimlane returns a swimlane with a fresh id.
func (s *Synthesizer) NewSwimlane(title string) board.Swimlane {
	return Swimlane(s.gen.NewID(), title)
}

// NewCard returns a card with a fresh id.
func (s *Synthesizer) NewCard(f CardFields) board.Card {
	return Card(s.gen.NewID(), f)
}

// cloneSlice always returns a non-nil slice so the JSON carries [] not null.
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
