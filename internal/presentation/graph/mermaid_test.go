package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/internal/presentation/graph"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			{ID: "t-1", Kind: "trigger.schedule", Role: domain.RoleTrigger, Label: "Schedule 0 9 * * 1"},
			{ID: "f1", Kind: "logic.filter", Role: domain.RoleLogic, Label: "Filter status"},
			{ID: "s1", Kind: "ai.summarize", Role: domain.RoleAI, Label: "Summarize"},
			{ID: "a1", Kind: "action.notify", Role: domain.RoleAction, Label: "Notify #ops"},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "t-1", Target: "f1"},
			{ID: "e2", Source: "f1", Target: "s1"},
			{ID: "e3", Source: "s1", Target: "a1"},
		},
	}

	out := graph.GenerateMermaid(g)

	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, `t_1(("Schedule 0 9 * * 1"))`, "trigger is a circle with sanitized id")
	assert.Contains(t, out, `f1["Filter status"]`)
	assert.Contains(t, out, `s1[/"Summarize"/]`)
	assert.Contains(t, out, `a1[["Notify #ops"]]`)
	assert.Contains(t, out, "t_1 --> f1")
	assert.Contains(t, out, "s1 --> a1")
}

func TestGenerateMermaid_FallbacksAndEscaping(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			{ID: "n1", Kind: "logic.filter", Role: domain.RoleLogic},
			{ID: "n2", Kind: "action.http", Role: domain.RoleAction, Label: `GET "api"`},
		},
	}

	out := graph.GenerateMermaid(g)
	assert.Contains(t, out, `n1["n1"]`, "unlabeled node falls back to its id")
	assert.Contains(t, out, `n2[["GET 'api'"]]`, "double quotes are rewritten")
}

func TestGenerateMermaid_EmptyGraph(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(domain.Graph{}))
}
