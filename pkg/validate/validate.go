/*
Package validate holds the topology invariant checks run before an explicit
"run" or export. Validation is read-only and advisory: a graph can be edited
into and out of any of the states reported here, and no mutation is gated on
the outcome.
*/
package validate

import (
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Check inspects the graph topology and reports blocking issues and
// advisory warnings. It never mutates its inputs.
//
// Issues: not exactly one TRIGGER node, or no ACTION node reachable by
// following edges forward from the trigger. Warnings: non-trigger nodes
// with no incoming edge (orphans) and sources with more than one outgoing
// edge (branches, informational).
func Check(nodes []domain.Node, edges []domain.Edge) domain.Report {
	var report domain.Report

	var triggers []domain.Node
	for _, n := range nodes {
		if n.Role == domain.RoleTrigger {
			triggers = append(triggers, n)
		}
	}

	switch len(triggers) {
	case 0:
		report.Issues = append(report.Issues, domain.Issuef(domain.CodeNoTrigger, "", "workflow has no trigger"))
	case 1:
		if !actionReachable(triggers[0].ID, nodes, edges) {
			report.Issues = append(report.Issues, domain.Issuef(domain.CodeNoAction, triggers[0].ID, "no action is reachable from the trigger"))
		}
	default:
		report.Issues = append(report.Issues, domain.Issuef(domain.CodeManyTriggers, "", "workflow has %d triggers, expected one", len(triggers)))
	}

	incoming := make(map[string]int, len(nodes))
	outgoing := make(map[string]int, len(nodes))
	for _, e := range edges {
		incoming[e.Target]++
		outgoing[e.Source]++
	}

	for _, n := range nodes {
		if n.Role != domain.RoleTrigger && incoming[n.ID] == 0 {
			report.Warnings = append(report.Warnings, domain.Issuef(domain.CodeOrphanedNode, n.ID, "node %q has no incoming connection", n.ID))
		}
	}
	for _, n := range nodes {
		if outgoing[n.ID] > 1 {
			report.Warnings = append(report.Warnings, domain.Issuef(domain.CodeBranch, n.ID, "node %q fans out to %d nodes", n.ID, outgoing[n.ID]))
		}
	}

	report.OK = len(report.Issues) == 0
	return report
}

// actionReachable walks edges forward from start looking for an ACTION node.
func actionReachable(start string, nodes []domain.Node, edges []domain.Edge) bool {
	roles := make(map[string]domain.Role, len(nodes))
	for _, n := range nodes {
		roles[n.ID] = n.Role
	}

	next := make(map[string][]string, len(edges))
	for _, e := range edges {
		next[e.Source] = append(next[e.Source], e.Target)
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if roles[current] == domain.RoleAction {
			return true
		}
		for _, target := range next[current] {
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}
	return false
}
