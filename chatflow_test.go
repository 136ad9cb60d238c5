package chatflow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatflow "github.com/markdavemanansala/Chat-To-Flow-sub001"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/planner"
)

func newStore(t *testing.T, opts ...chatflow.Option) *chatflow.Store {
	t.Helper()
	s := chatflow.New("test flow", opts...)
	t.Cleanup(s.Close)
	return s
}

func mustApply(t *testing.T, s *chatflow.Store, p domain.Patch) {
	t.Helper()
	res := s.Apply(p)
	require.True(t, res.OK, "patch %s rejected: %v", p.Op, res.Issues)
}

func TestStore_BuildSmallWorkflow(t *testing.T) {
	s := newStore(t)

	res := s.Apply(domain.AddNode(domain.Node{
		ID: "t1", Kind: "trigger.schedule",
		Config: map[string]any{"cron": "0 9 * * *"},
	}))
	require.True(t, res.OK)
	require.Len(t, res.Graph.Nodes, 1)
	assert.Equal(t, domain.RoleTrigger, res.Graph.Nodes[0].Role)
	assert.Equal(t, "Schedule 0 9 * * *", res.Graph.Nodes[0].Label)

	mustApply(t, s, domain.AddNode(domain.Node{ID: "a1", Kind: "action.notify"}))
	mustApply(t, s, domain.AddEdge(domain.Edge{ID: "e1", Source: "t1", Target: "a1"}))

	report := s.Validate()
	assert.True(t, report.OK)
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Warnings)

	// Removing the only action cascades its edge and breaks reachability.
	mustApply(t, s, domain.RemoveNode("a1"))
	assert.Empty(t, s.Graph().Edges)

	report = s.Validate()
	require.False(t, report.OK)
	codes := make([]string, len(report.Issues))
	for i, iss := range report.Issues {
		codes[i] = iss.Code
	}
	assert.Contains(t, codes, domain.CodeNoAction)
}

func TestStore_RejectionLeavesEverythingUntouched(t *testing.T) {
	s := newStore(t)
	mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.webhook"}))
	before := s.Graph()

	res := s.Apply(domain.RemoveNode("missing"))
	require.False(t, res.OK)
	require.NotEmpty(t, res.Issues)
	assert.Contains(t, res.Issues[0].Message, "missing")
	assert.Equal(t, before, res.Graph)
	assert.Equal(t, before, s.Graph())

	// A failed patch must not create an undo step.
	g, moved := s.Undo()
	assert.True(t, moved)
	assert.Empty(t, g.Nodes, "one undo should reach the empty baseline")
	_, moved = s.Undo()
	assert.False(t, moved)
}

func TestStore_BulkAtomicity(t *testing.T) {
	s := newStore(t)

	res := s.Apply(domain.Bulk(
		domain.AddNode(domain.Node{ID: "x", Kind: "logic.filter"}),
		domain.RemoveNode("y"),
	))
	require.False(t, res.OK)
	assert.Empty(t, s.Graph().Nodes, "partial bulk effects must not leak")
	assert.Empty(t, res.Graph.Nodes)

	// No history entry either.
	_, moved := s.Undo()
	assert.False(t, moved)
}

func TestStore_UndoRedoInverseLaw(t *testing.T) {
	s := newStore(t)

	patches := []domain.Patch{
		domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.schedule", Config: map[string]any{"cron": "* * * * *"}}),
		domain.AddNode(domain.Node{ID: "f1", Kind: "logic.filter", Config: map[string]any{"field": "status"}}),
		domain.AddNode(domain.Node{ID: "a1", Kind: "action.email", Config: map[string]any{"to": "ops@example.com"}}),
		domain.AddEdge(domain.Edge{ID: "e1", Source: "t1", Target: "f1"}),
		domain.AddEdge(domain.Edge{ID: "e2", Source: "f1", Target: "a1"}),
		domain.SetName("triage"),
	}
	for _, p := range patches {
		mustApply(t, s, p)
	}
	final := s.Graph()

	for range patches {
		_, moved := s.Undo()
		require.True(t, moved)
	}
	assert.Empty(t, s.Graph().Nodes)
	assert.Equal(t, "test flow", s.Graph().Name, "undo walks name changes back too")

	for range patches {
		_, moved := s.Redo()
		require.True(t, moved)
	}
	assert.Equal(t, final, s.Graph())
}

func TestStore_ResetStartsEmptyHistory(t *testing.T) {
	s := newStore(t)
	mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.webhook"}))

	s.Reset("fresh")
	g := s.Graph()
	assert.Equal(t, "fresh", g.Name)
	assert.Empty(t, g.Nodes)

	got, moved := s.Undo()
	assert.False(t, moved)
	assert.Equal(t, g, got, "undo on a fresh session is a no-op")
}

func TestStore_Observers(t *testing.T) {
	s := newStore(t)

	var commits []int
	cancel := s.Subscribe(func(g domain.Graph) {
		commits = append(commits, len(g.Nodes))
	})

	mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.webhook"}))
	s.Apply(domain.RemoveNode("nope"))
	mustApply(t, s, domain.AddNode(domain.Node{ID: "a1", Kind: "action.notify"}))

	assert.Equal(t, []int{1, 2}, commits, "observers fire per commit, never on rejection")

	cancel()
	mustApply(t, s, domain.AddNode(domain.Node{ID: "f1", Kind: "logic.filter"}))
	assert.Equal(t, []int{1, 2}, commits, "cancelled observers stay silent")
}

func TestStore_ObserverSnapshotsAreIndependent(t *testing.T) {
	s := newStore(t)

	var seen domain.Graph
	s.Subscribe(func(g domain.Graph) { seen = g })

	mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.schedule",
		Config: map[string]any{"cron": "0 9 * * *"}}))

	seen.Nodes[0].Config["cron"] = "tampered"
	assert.Equal(t, "0 9 * * *", s.Graph().Nodes[0].Config["cron"])
}

func TestStore_ExportImport(t *testing.T) {
	s := newStore(t)
	mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.schedule",
		Config: map[string]any{"cron": "0 9 * * 1"}}))
	mustApply(t, s, domain.AddNode(domain.Node{ID: "a1", Kind: "action.http",
		Config: map[string]any{"url": "https://example.com", "method": "POST"}}))
	mustApply(t, s, domain.AddEdge(domain.Edge{ID: "e1", Source: "t1", Target: "a1"}))

	doc, err := s.Export()
	require.NoError(t, err)

	other := newStore(t)
	require.NoError(t, other.Import(doc))

	a, b := s.Graph(), other.Graph()
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Edges, b.Edges)

	// Imported sessions start from a fresh history baseline.
	_, moved := other.Undo()
	assert.False(t, moved)
}

type stubPlanner struct {
	patch *domain.Patch
	err   error
}

func (p *stubPlanner) Propose(ctx context.Context, text, summary string, nodes []domain.Node) (*domain.Patch, error) {
	return p.patch, p.err
}

func TestStore_Propose(t *testing.T) {
	t.Run("Applies Vetted Patch", func(t *testing.T) {
		add := domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.schedule",
			Config: map[string]any{"cron": "0 9 * * *"}})
		s := newStore(t, chatflow.WithPlanner(&stubPlanner{patch: &add}))

		p, res, err := s.Propose(context.Background(), "add a schedule")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, res.OK)
		assert.Len(t, s.Graph().Nodes, 1)
	})

	t.Run("Ambiguity Is A Clean No-Op", func(t *testing.T) {
		s := newStore(t, chatflow.WithPlanner(&stubPlanner{}))

		p, res, err := s.Propose(context.Background(), "hmm")
		require.NoError(t, err)
		assert.Nil(t, p)
		assert.True(t, res.OK)
	})

	t.Run("Refuses Removal Of Unseen Node", func(t *testing.T) {
		rm := domain.RemoveNode("never-shown")
		s := newStore(t, chatflow.WithPlanner(&stubPlanner{patch: &rm}))
		mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.webhook"}))
		before := s.Graph()

		p, res, err := s.Propose(context.Background(), "remove it")
		require.NoError(t, err)
		require.NotNil(t, p)
		require.False(t, res.OK)
		assert.Equal(t, domain.CodePlannerRefused, res.Issues[0].Code)
		assert.Equal(t, before, s.Graph(), "refused proposals leave no partial effects")
	})

	t.Run("Planner Errors Propagate", func(t *testing.T) {
		s := newStore(t, chatflow.WithPlanner(&stubPlanner{err: errors.New("model offline")}))

		_, _, err := s.Propose(context.Background(), "anything")
		assert.ErrorContains(t, err, "model offline")
	})

	t.Run("No Planner Configured", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Propose(context.Background(), "anything")
		assert.Error(t, err)
	})
}

func TestStore_SummaryEventuallyFollowsCommits(t *testing.T) {
	s := newStore(t)

	mustApply(t, s, domain.AddNode(domain.Node{ID: "t1", Kind: "trigger.schedule",
		Config: map[string]any{"cron": "0 9 * * *"}}))
	mustApply(t, s, domain.AddNode(domain.Node{ID: "a1", Kind: "action.notify"}))

	want := planner.Summarize(s.Graph())
	require.Eventually(t, func() bool {
		return s.Summary() == want
	}, 2*time.Second, 10*time.Millisecond, "summary should converge on the latest commit")
}

func TestStore_HistoryLimitOption(t *testing.T) {
	s := newStore(t, chatflow.WithHistoryLimit(3))

	for _, id := range []string{"n1", "n2", "n3", "n4", "n5"} {
		mustApply(t, s, domain.AddNode(domain.Node{ID: id, Kind: "logic.filter"}))
	}

	// Bound of 3 snapshots leaves room for two undos from the newest state.
	var steps int
	for {
		if _, moved := s.Undo(); !moved {
			break
		}
		steps++
	}
	assert.Equal(t, 2, steps)
	assert.Len(t, s.Graph().Nodes, 3)
}
