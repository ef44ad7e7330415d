// Package hints provides actionable user guidance for failed imports.
package hints

import (
	"fmt"
	"strings"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	s := "💡 " + h.Message
	if h.Command != "" {
		s += fmt.Sprintf("\n   Run: %s", h.Command)
	}
	return s
}

// Context describes the failed run hints are generated for.
type Context struct {
	Err    error
	File   string // spreadsheet path
	JSON   string // board document path
	Output string // destination path, "" for stdout
}

// Provider generates hints for a failure.
type Provider interface {
	GetHints(ctx Context) []*Hint
	Name() string
}

// ProviderFunc is an adapter to allow functions to be used as Providers.
type ProviderFunc func(Context) []*Hint

// GetHints calls the function.
func (f ProviderFunc) GetHints(ctx Context) []*Hint {
	return f(ctx)
}

// Name returns the function name (generic).
func (f ProviderFunc) Name() string {
	return "func"
}

// Registry manages hint providers.
type Registry struct {
	providers []Provider
	maxHints  int
}

// NewRegistry creates a registry returning at most maxHints hints.
// maxHints <= 0 means no limit.
func NewRegistry(maxHints int) *Registry {
	return &Registry{maxHints: maxHints}
}

// Register adds a hint provider to the registry.
func (r *Registry) Register(provider Provider) {
	r.providers = append(r.providers, provider)
}

// GetHints collects hints from every provider in registration order,
// dropping duplicates.
func (r *Registry) GetHints(ctx Context) []*Hint {
	var out []*Hint
	seen := make(map[string]struct{})
	for _, p := range r.providers {
		for _, h := range p.GetHints(ctx) {
			key := h.Message + "\x00" + h.Command
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, h)
			if r.maxHints > 0 && len(out) == r.maxHints {
				return out
			}
		}
	}
	return out
}

// Strings renders hints one per element.
func Strings(hs []*Hint) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, strings.TrimSpace(h.String()))
	}
	return out
}
