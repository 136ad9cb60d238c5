package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/registry"
)

// RuleBased is a small keyword planner. It exists so the contract has a
// network-free implementation for tests, demos and offline use; a hosted
// LLM planner satisfies the same interface.
type RuleBased struct {
	// nextID numbers generated ids within one planner instance.
	nextID int
}

// NewRuleBased creates a keyword planner.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

var kindAliases = map[string]string{
	"schedule":     "trigger.schedule",
	"cron":         "trigger.schedule",
	"webhook":      "trigger.webhook",
	"filter":       "logic.filter",
	"branch":       "logic.branch",
	"delay":        "logic.delay",
	"wait":         "logic.delay",
	"summarize":    "ai.summarize",
	"summary":      "ai.summarize",
	"classify":     "ai.classify",
	"notify":       "action.notify",
	"notification": "action.notify",
	"email":        "action.email",
	"http":         "action.http",
	"request":      "action.http",
}

// Propose interprets a handful of imperative phrasings. Anything it cannot
// match confidently yields (nil, nil).
func (p *RuleBased) Propose(ctx context.Context, text string, summary string, nodes []domain.Node) (*domain.Patch, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(words) == 0 {
		return nil, nil
	}

	switch words[0] {
	case "add", "create", "insert":
		return p.proposeAdd(words, nodes), nil
	case "remove", "delete", "drop":
		return proposeRemove(words, nodes), nil
	case "connect", "link", "wire":
		return p.proposeConnect(words, nodes), nil
	case "rename", "call":
		return proposeRename(text), nil
	case "undo", "redo":
		// Not a structural patch; handled by the host surface.
		return nil, nil
	}
	return nil, nil
}

func (p *RuleBased) proposeAdd(words []string, nodes []domain.Node) *domain.Patch {
	for _, w := range words[1:] {
		kindID, ok := kindAliases[strings.Trim(w, ".,!?")]
		if !ok {
			continue
		}
		if !registry.Known(kindID) {
			continue
		}
		node := domain.Node{
			ID:   p.freshID(kindID, nodes),
			Kind: kindID,
		}
		patch := domain.AddNode(node)
		return &patch
	}
	return nil
}

func proposeRemove(words []string, nodes []domain.Node) *domain.Patch {
	// Only remove nodes we can point at by id; fuzzy matches are too risky
	// for a destructive operation.
	for _, w := range words[1:] {
		id := strings.Trim(w, ".,!?\"'")
		for _, n := range nodes {
			if n.ID == id {
				patch := domain.RemoveNode(id)
				return &patch
			}
		}
	}
	return nil
}

func (p *RuleBased) proposeConnect(words []string, nodes []domain.Node) *domain.Patch {
	var ids []string
	for _, w := range words[1:] {
		id := strings.Trim(w, ".,!?\"'")
		for _, n := range nodes {
			if n.ID == id {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		return nil
	}
	patch := domain.AddEdge(domain.Edge{
		ID:     fmt.Sprintf("e-%s-%s", ids[0], ids[1]),
		Source: ids[0],
		Target: ids[1],
	})
	return &patch
}

func proposeRename(text string) *domain.Patch {
	// "rename to X" / "call it X"
	lower := strings.ToLower(text)
	marker := " to "
	if i := strings.Index(lower, " it "); strings.HasPrefix(lower, "call") && i >= 0 {
		marker = " it "
	}
	i := strings.Index(lower, marker)
	if i < 0 {
		return nil
	}
	name := strings.Trim(strings.TrimSpace(text[i+len(marker):]), "\"'")
	if name == "" {
		return nil
	}
	patch := domain.SetName(name)
	return &patch
}

func (p *RuleBased) freshID(kindID string, nodes []domain.Node) string {
	base := kindID[strings.LastIndex(kindID, ".")+1:]
	taken := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		taken[n.ID] = true
	}
	for {
		p.nextID++
		id := fmt.Sprintf("%s-%d", base, p.nextID)
		if !taken[id] {
			return id
		}
	}
}
