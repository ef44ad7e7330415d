// Package ident generates identifiers for entities synthesized during an
// import. Generators are values handed to the importer, so tests can swap in
// a deterministic sequence.
package ident

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/wekanimport/pkg/constants"
	"github.com/agentstation/wekanimport/pkg/errors"
)

// Generator produces identifiers.
type Generator interface {
	NewID() string
}

// Func adapts a function to the Generator interface.
type Func func() string

// NewID calls f.
func (f Func) NewID() string { return f() }

// Format names a generator family.
type Format string

const (
	// FormatMeteor produces 17 character ids like the ones Wekan assigns.
	FormatMeteor Format = "meteor"
	// FormatUUID produces random version 4 UUIDs.
	FormatUUID Format = "uuid"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMeteor, FormatUUID:
		return f, nil
	case "":
		return FormatMeteor, nil
	default:
		return "", errors.NewValidationError("id_format", s, "must be one of: meteor, uuid")
	}
}

// New returns the generator for format.
func New(format Format) (Generator, error) {
	switch format {
	case FormatMeteor, "":
		return Random(), nil
	case FormatUUID:
		return UUID(), nil
	default:
		return nil, errors.NewValidationError("id_format", string(format), "unknown id format")
	}
}

// MeteorAlphabet is the character set of Meteor random ids. Easily confused
// characters (0, 1, I, O, l, ...) are left out.
const MeteorAlphabet = "23456789ABCDEFGHJKLMNPQRSTWXYZabcdefghijkmnopqrstuvwxyz"

// MeteorLength is the length of a Meteor random id.
const MeteorLength = 17

// Random returns a generator of Meteor style ids backed by crypto/rand.
func Random() Generator {
	return Func(randomID)
}

func randomID() string {
	size := big.NewInt(int64(len(MeteorAlphabet)))
	b := make([]byte, MeteorLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(fmt.Sprintf("ident: reading random source: %v", err))
		}
		b[i] = MeteorAlphabet[n.Int64()]
	}
	return string(b)
}

// UUID returns a generator of random UUID strings.
func UUID() Generator {
	return Func(uuid.NewString)
}

// Sequence returns a deterministic generator yielding prefix1, prefix2, ...
// It is safe for concurrent use.
func Sequence(prefix string) Generator {
	return &sequence{prefix: prefix}
}

type sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (s *sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.prefix + strconv.Itoa(s.n)
}

// Unique wraps gen so that ids for which taken reports true are redrawn.
// After constants.MaxIDAttempts draws the last candidate is returned as is;
// the caller's own duplicate check is the final guard.
func Unique(gen Generator, taken func(string) bool) Generator {
	return Func(func() string {
		id := gen.NewID()
		for i := 1; i < constants.MaxIDAttempts && taken(id); i++ {
			id = gen.NewID()
		}
		return id
	})
}
