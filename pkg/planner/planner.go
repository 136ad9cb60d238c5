/*
Package planner defines the contract between the engine and the
natural-language collaborator that turns chat messages into patches.

The engine never does language understanding itself. A Planner receives the
raw user text, a short textual summary of the graph, and the live node list
for existence checks, and answers with a single patch, a BULK patch, or nil
when it has no confident interpretation. Nil is not an error; the caller
decides whether to re-prompt the user.

Vet is the safety precondition the consuming layer must run before applying
any proposal: a planner may only remove nodes it was shown.
*/
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Planner is implemented by any collaborator able to turn free text into a
// patch proposal. Implementations may call out to the network; the engine
// only ever sees the finished patch.
type Planner interface {
	// Propose returns a patch for the given text, or nil when no confident
	// interpretation exists. Returning (nil, nil) is the expected way to
	// signal ambiguity.
	Propose(ctx context.Context, text string, summary string, nodes []domain.Node) (*domain.Patch, error)
}

// Vet checks the planner precondition: every REMOVE_NODE the proposal
// contains, bare or nested inside a BULK, must reference an id present in
// the node list the planner was given. A failing proposal must be rejected
// by the caller without partial effects.
func Vet(p *domain.Patch, nodes []domain.Node) []domain.Issue {
	if p == nil {
		return nil
	}
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	return vet(*p, known)
}

func vet(p domain.Patch, known map[string]bool) []domain.Issue {
	switch p.Op {
	case domain.OpRemoveNode:
		if !known[p.NodeID] {
			return []domain.Issue{domain.Issuef(domain.CodePlannerRefused, p.NodeID,
				"planner proposed removing unknown node %q", p.NodeID)}
		}
	case domain.OpBulk:
		var issues []domain.Issue
		for _, op := range p.Ops {
			issues = append(issues, vet(op, known)...)
		}
		return issues
	}
	return nil
}

// Summarize renders the short plain-text graph description handed to
// planners as grounding context. It is intentionally lossy: ids, kinds and
// wiring, nothing else.
func Summarize(g domain.Graph) string {
	var sb strings.Builder
	name := g.Name
	if name == "" {
		name = "untitled workflow"
	}
	fmt.Fprintf(&sb, "Workflow %q: %d nodes, %d connections.\n", name, len(g.Nodes), len(g.Edges))

	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "- %s (%s, %s): %s\n", n.ID, n.Kind, n.Role, n.Label)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "- %s -> %s\n", e.Source, e.Target)
	}
	return strings.TrimRight(sb.String(), "\n")
}
