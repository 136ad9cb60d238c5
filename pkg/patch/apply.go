/*
Package patch implements the patch applier: the single entry point through
which every structural change to a graph flows.

Apply is pure and copy-on-write. It either returns a fresh graph with the
patch fully applied, or the untouched input together with a human-readable
issue list. There is no third state: a failing patch, including any
sub-operation of a BULK, leaves nothing half-mutated behind.
*/
package patch

import (
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/label"
)

// Apply computes the result of applying p to g. Neither g nor p is mutated;
// committing the returned graph to canonical state is the caller's job.
func Apply(p domain.Patch, g domain.Graph) domain.Result {
	work := g.Clone()
	issues := apply(p, &work)
	if len(issues) > 0 {
		return domain.Result{OK: false, Graph: g, Issues: issues}
	}
	return domain.Result{OK: true, Graph: work}
}

// apply mutates work in place and reports issues. Callers own the copy.
func apply(p domain.Patch, work *domain.Graph) []domain.Issue {
	switch p.Op {
	case domain.OpAddNode:
		return addNode(p, work)
	case domain.OpUpdateNode:
		return updateNode(p, work)
	case domain.OpRemoveNode:
		return removeNode(p, work)
	case domain.OpAddEdge:
		return addEdge(p, work)
	case domain.OpRemoveEdge:
		return removeEdge(p, work)
	case domain.OpRewire:
		return rewire(p, work)
	case domain.OpSetName:
		work.Name = p.Name
		return nil
	case domain.OpBulk:
		return bulk(p, work)
	default:
		return []domain.Issue{domain.Issuef(domain.CodeBadPatch, "", "unknown operation %q", p.Op)}
	}
}

func addNode(p domain.Patch, work *domain.Graph) []domain.Issue {
	if p.Node == nil || p.Node.ID == "" {
		return []domain.Issue{domain.Issuef(domain.CodeBadPatch, "", "ADD_NODE requires a node with an id")}
	}
	n := p.Node.Clone()
	if work.FindNode(n.ID) >= 0 {
		return []domain.Issue{domain.Issuef(domain.CodeDuplicateNode, n.ID, "node %q already exists", n.ID)}
	}
	if n.Role == "" {
		n.Role = domain.RoleFromKind(n.Kind)
	}
	if n.Label == "" {
		n.Label = label.Generate(n.Kind, n.Config)
	} else {
		n.Label = label.Truncate(n.Label)
	}
	work.Nodes = append(work.Nodes, n)
	return nil
}

func updateNode(p domain.Patch, work *domain.Graph) []domain.Issue {
	i := work.FindNode(p.NodeID)
	if i < 0 {
		return []domain.Issue{domain.Issuef(domain.CodeMissingNode, p.NodeID, "node %q does not exist", p.NodeID)}
	}
	n := &work.Nodes[i]

	if len(p.Config) > 0 {
		if n.Config == nil {
			n.Config = make(map[string]any, len(p.Config))
		}
		for k, v := range p.Config {
			n.Config[k] = v
		}
		// A config change re-derives the label unless this same mutation
		// supplies an explicit one.
		if p.Label == nil {
			n.Label = label.Generate(n.Kind, n.Config)
		}
	}
	if p.Label != nil {
		n.Label = label.Truncate(*p.Label)
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	return nil
}

func removeNode(p domain.Patch, work *domain.Graph) []domain.Issue {
	i := work.FindNode(p.NodeID)
	if i < 0 {
		return []domain.Issue{domain.Issuef(domain.CodeMissingNode, p.NodeID, "node %q does not exist", p.NodeID)}
	}
	work.Nodes = append(work.Nodes[:i], work.Nodes[i+1:]...)

	// Cascade: no edge may keep referencing the removed node.
	kept := work.Edges[:0]
	for _, e := range work.Edges {
		if e.Source != p.NodeID && e.Target != p.NodeID {
			kept = append(kept, e)
		}
	}
	work.Edges = kept
	return nil
}

func addEdge(p domain.Patch, work *domain.Graph) []domain.Issue {
	if p.Edge == nil || p.Edge.ID == "" {
		return []domain.Issue{domain.Issuef(domain.CodeBadPatch, "", "ADD_EDGE requires an edge with an id")}
	}
	e := *p.Edge
	var issues []domain.Issue
	if work.FindEdge(e.ID) >= 0 {
		issues = append(issues, domain.Issuef(domain.CodeDuplicateEdge, e.ID, "edge %q already exists", e.ID))
	}
	if work.FindNode(e.Source) < 0 {
		issues = append(issues, domain.Issuef(domain.CodeMissingNode, e.Source, "source node %q does not exist", e.Source))
	}
	if work.FindNode(e.Target) < 0 {
		issues = append(issues, domain.Issuef(domain.CodeMissingNode, e.Target, "target node %q does not exist", e.Target))
	}
	if e.Source != "" && e.Source == e.Target {
		issues = append(issues, domain.Issuef(domain.CodeSelfLoop, e.ID, "edge %q connects node %q to itself", e.ID, e.Source))
	}
	if len(issues) > 0 {
		return issues
	}
	work.Edges = append(work.Edges, e)
	return nil
}

func removeEdge(p domain.Patch, work *domain.Graph) []domain.Issue {
	i := work.FindEdge(p.EdgeID)
	if i < 0 {
		return []domain.Issue{domain.Issuef(domain.CodeMissingEdge, p.EdgeID, "edge %q does not exist", p.EdgeID)}
	}
	work.Edges = append(work.Edges[:i], work.Edges[i+1:]...)
	return nil
}

// rewire moves the endpoint currently at From over to the node named by
// To. The edge is identified by EdgeID when given; the fallback path picks
// the first edge whose source is From, best effort when several edges
// share that source.
func rewire(p domain.Patch, work *domain.Graph) []domain.Issue {
	if work.FindNode(p.To) < 0 {
		return []domain.Issue{domain.Issuef(domain.CodeMissingNode, p.To, "rewire target node %q does not exist", p.To)}
	}

	var e *domain.Edge
	if p.EdgeID != "" {
		i := work.FindEdge(p.EdgeID)
		if i < 0 {
			return []domain.Issue{domain.Issuef(domain.CodeMissingEdge, p.EdgeID, "edge %q does not exist", p.EdgeID)}
		}
		e = &work.Edges[i]
		switch p.From {
		case e.Source:
			if p.To == e.Target {
				return []domain.Issue{domain.Issuef(domain.CodeSelfLoop, e.ID, "rewire would connect node %q to itself", p.To)}
			}
			e.Source = p.To
		case e.Target:
			if p.To == e.Source {
				return []domain.Issue{domain.Issuef(domain.CodeSelfLoop, e.ID, "rewire would connect node %q to itself", p.To)}
			}
			e.Target = p.To
		default:
			return []domain.Issue{domain.Issuef(domain.CodeBadPatch, e.ID, "edge %q does not touch node %q", e.ID, p.From)}
		}
		return nil
	}

	for i := range work.Edges {
		if work.Edges[i].Source == p.From {
			e = &work.Edges[i]
			break
		}
	}
	if e == nil {
		return []domain.Issue{domain.Issuef(domain.CodeMissingEdge, p.From, "no edge starting at node %q", p.From)}
	}
	if p.To == e.Target {
		return []domain.Issue{domain.Issuef(domain.CodeSelfLoop, e.ID, "rewire would connect node %q to itself", p.To)}
	}
	e.Source = p.To
	return nil
}

// bulk applies every sub-op in order against the shared working copy.
// All-or-nothing: one failing sub-op discards the entire batch. Remaining
// sub-ops are still attempted (each against a scratch copy) purely to
// collect further diagnostics.
func bulk(p domain.Patch, work *domain.Graph) []domain.Issue {
	var issues []domain.Issue
	for i, op := range p.Ops {
		if len(issues) > 0 {
			scratch := work.Clone()
			issues = append(issues, indexed(apply(op, &scratch), i)...)
			continue
		}
		issues = append(issues, indexed(apply(op, work), i)...)
	}
	return issues
}

// indexed tags issues with the position of their failing sub-op. Issues
// already tagged by a nested BULK keep the inner index.
func indexed(issues []domain.Issue, i int) []domain.Issue {
	for j := range issues {
		if issues[j].OpIndex < 0 {
			issues[j].OpIndex = i
		}
	}
	return issues
}
