package history_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/history"
)

func graphNamed(name string) domain.Graph {
	g := domain.NewGraph(name)
	g.Nodes = []domain.Node{{ID: name, Kind: "logic.filter", Config: map[string]any{"field": name}}}
	return g
}

func TestHistory_UndoRedo(t *testing.T) {
	h := history.New(domain.NewGraph("base"), 0)
	h.Push(graphNamed("one"))
	h.Push(graphNamed("two"))

	g, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "one", g.Name)

	g, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "base", g.Name)

	g, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "one", g.Name)

	g, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "two", g.Name)
}

func TestHistory_BoundaryNoOps(t *testing.T) {
	h := history.New(domain.NewGraph("base"), 0)

	_, ok := h.Undo()
	assert.False(t, ok, "undo at the oldest entry is a no-op")
	_, ok = h.Redo()
	assert.False(t, ok, "redo at the newest entry is a no-op")

	h.Push(graphNamed("one"))
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistory_PushDiscardsRedoTail(t *testing.T) {
	h := history.New(domain.NewGraph("base"), 0)
	h.Push(graphNamed("one"))
	h.Push(graphNamed("two"))

	_, ok := h.Undo()
	require.True(t, ok)

	h.Push(graphNamed("fork"))

	_, ok = h.Redo()
	assert.False(t, ok, "the 'two' branch must be gone after a new push")

	g, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "one", g.Name)
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := history.New(domain.NewGraph("base"), 5)
	for i := 0; i < 10; i++ {
		h.Push(graphNamed(fmt.Sprintf("g%d", i)))
	}

	assert.Equal(t, 5, h.Len())

	// Walk all the way back; the floor is the oldest surviving snapshot.
	var last domain.Graph
	for {
		g, ok := h.Undo()
		if !ok {
			break
		}
		last = g
	}
	assert.Equal(t, "g5", last.Name)
}

func TestHistory_SnapshotsAreIndependent(t *testing.T) {
	h := history.New(domain.NewGraph("base"), 0)
	live := graphNamed("one")
	h.Push(live)

	// Mutate the graph that was pushed; the stored snapshot must not move.
	live.Nodes[0].Config["field"] = "tampered"
	live.Name = "tampered"

	h.Push(graphNamed("two"))
	g, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "one", g.Name)
	assert.Equal(t, "one", g.Nodes[0].Config["field"])

	// And mutating what Undo returned must not corrupt a later read.
	g.Nodes[0].Config["field"] = "tampered again"
	again, ok := h.Redo()
	require.True(t, ok)
	_, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "two", again.Name)
}
