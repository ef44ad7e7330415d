package wekanimport

import (
	"sync"

	"github.com/agentstation/wekanimport/pkg/board"
	"github.com/agentstation/wekanimport/pkg/importer"
)

// Hook function types for import events
type (
	// SwimlaneAddedHook is called when a run creates the target swimlane
	SwimlaneAddedHook func(swimlane board.Swimlane)

	// CardAddedHook is called for every card a run creates
	CardAddedHook func(card board.Card)
)

// hooks manages event callbacks for document changes
type hooks struct {
	mu              sync.RWMutex
	onSwimlaneAdded []SwimlaneAddedHook
	onCardAdded     []CardAddedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnSwimlaneAdded registers a callback for created swimlanes
func (c *client) OnSwimlaneAdded(fn SwimlaneAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSwimlaneAdded = append(c.hooks.onSwimlaneAdded, fn)
}

// OnCardAdded registers a callback for created cards
func (c *client) OnCardAdded(fn CardAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCardAdded = append(c.hooks.onCardAdded, fn)
}

// triggerImport calls the hooks for everything result added to doc
func (h *hooks) triggerImport(doc *board.Document, result *importer.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if result.Swimlane.Created {
		for _, s := range doc.Swimlanes {
			if s.ID != result.Swimlane.ID {
				continue
			}
			for _, fn := range h.onSwimlaneAdded {
				fn(s)
			}
		}
	}

	if len(h.onCardAdded) == 0 {
		return
	}
	created := make(map[string]struct{}, len(result.CardIDs))
	for _, id := range result.CardIDs {
		created[id] = struct{}{}
	}
	for _, card := range doc.Cards {
		if _, ok := created[card.ID]; !ok {
			continue
		}
		for _, fn := range h.onCardAdded {
			fn(card)
		}
	}
}
