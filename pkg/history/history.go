/*
Package history keeps the bounded undo/redo stack of committed graphs.

Entries are deep, structurally independent snapshots: later edits to the
live graph can never reach back and corrupt an earlier entry. Undo and redo
at a boundary are silent no-ops, never errors.
*/
package history

import (
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// DefaultLimit is the number of snapshots kept before the oldest is evicted.
const DefaultLimit = 50

// History is an undo/redo stack. entries[pos] is always the currently
// committed snapshot. Not safe for concurrent use; the owning store
// serializes access.
type History struct {
	entries []domain.Graph
	pos     int
	limit   int
}

// New creates a history seeded with the initial committed graph.
func New(initial domain.Graph, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		entries: []domain.Graph{initial.Clone()},
		pos:     0,
		limit:   limit,
	}
}

// Push records a newly committed graph. Any redo entries past the current
// position are discarded; once the stack exceeds the limit the oldest
// entry is evicted.
func (h *History) Push(g domain.Graph) {
	h.entries = append(h.entries[:h.pos+1], g.Clone())
	h.pos++

	if len(h.entries) > h.limit {
		over := len(h.entries) - h.limit
		h.entries = h.entries[over:]
		h.pos -= over
	}
}

// Undo moves back one snapshot. Returns ok=false at the oldest entry,
// leaving the position unchanged.
func (h *History) Undo() (domain.Graph, bool) {
	if h.pos == 0 {
		return domain.Graph{}, false
	}
	h.pos--
	return h.entries[h.pos].Clone(), true
}

// Redo moves forward one snapshot. Returns ok=false at the newest entry.
func (h *History) Redo() (domain.Graph, bool) {
	if h.pos >= len(h.entries)-1 {
		return domain.Graph{}, false
	}
	h.pos++
	return h.entries[h.pos].Clone(), true
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool { return h.pos > 0 }

// CanRedo reports whether a newer snapshot exists.
func (h *History) CanRedo() bool { return h.pos < len(h.entries)-1 }

// Len returns the number of snapshots currently held.
func (h *History) Len() int { return len(h.entries) }
