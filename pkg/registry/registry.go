/*
Package registry holds the closed catalog of node kinds: which category
(and therefore role) each kind belongs to, and the shape of its config.

The catalog is data the rest of the engine consults, not a plugin system.
Config checks are advisory: a node with a malformed config is still a valid
graph member, it just carries warnings.
*/
package registry

import (
	"sort"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/schema"
)

// Kind describes one entry of the catalog.
type Kind struct {
	ID          string
	Description string

	// Config is the advisory field schema, checked by LintConfig.
	Config schema.Schema

	// NeedsConnection marks kinds whose external service requires a
	// credential prompt before first use. The connection subsystem reads
	// only this flag, never graph internals.
	NeedsConnection bool
}

// Role returns the role derived from the kind's category prefix.
func (k Kind) Role() domain.Role { return domain.RoleFromKind(k.ID) }

var catalog = map[string]Kind{
	"trigger.schedule": {
		ID:          "trigger.schedule",
		Description: "Fires on a cron schedule.",
		Config:      schema.Schema{"cron": schema.String()},
	},
	"trigger.webhook": {
		ID:          "trigger.webhook",
		Description: "Fires when the inbound webhook path is called.",
		Config:      schema.Schema{"path": schema.String()},
	},
	"trigger.email": {
		ID:              "trigger.email",
		Description:     "Fires when a matching email arrives.",
		Config:          schema.Schema{"from": schema.String()},
		NeedsConnection: true,
	},
	"logic.filter": {
		ID:          "logic.filter",
		Description: "Passes items through only when the condition holds.",
		Config:      schema.Schema{"field": schema.String()},
	},
	"logic.branch": {
		ID:          "logic.branch",
		Description: "Routes items down different paths by field value.",
		Config:      schema.Schema{"field": schema.String()},
	},
	"logic.delay": {
		ID:          "logic.delay",
		Description: "Holds items for a fixed duration.",
		Config:      schema.Schema{"duration": schema.String()},
	},
	"ai.summarize": {
		ID:          "ai.summarize",
		Description: "Produces a short summary of the incoming text.",
	},
	"ai.classify": {
		ID:          "ai.classify",
		Description: "Assigns one of the configured labels to each item.",
		Config:      schema.Schema{"labels": schema.String()},
	},
	"action.notify": {
		ID:              "action.notify",
		Description:     "Posts a notification to a channel.",
		Config:          schema.Schema{"channel": schema.String()},
		NeedsConnection: true,
	},
	"action.email": {
		ID:              "action.email",
		Description:     "Sends an email.",
		Config:          schema.Schema{"to": schema.String()},
		NeedsConnection: true,
	},
	"action.http": {
		ID:          "action.http",
		Description: "Calls an external HTTP endpoint.",
		Config:      schema.Schema{"url": schema.String()},
	},
}

// Lookup returns the catalog entry for a kind id.
func Lookup(id string) (Kind, bool) {
	k, ok := catalog[id]
	return k, ok
}

// Known reports whether the kind id is part of the closed set.
func Known(id string) bool {
	_, ok := catalog[id]
	return ok
}

// All returns the catalog sorted by kind id.
func All() []Kind {
	kinds := make([]Kind, 0, len(catalog))
	for _, k := range catalog {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].ID < kinds[j].ID })
	return kinds
}

// LintGraph runs LintConfig over every node, tagging each warning with the
// node's id so surfaces can point at the offending step.
func LintGraph(nodes []domain.Node) []domain.Issue {
	var issues []domain.Issue
	for _, n := range nodes {
		for _, iss := range LintConfig(n.Kind, n.Config) {
			iss.Ref = n.ID
			issues = append(issues, iss)
		}
	}
	return issues
}

// LintConfig checks a node's config against its kind schema. Unknown kinds
// and schema violations come back as warnings; an empty slice means clean.
func LintConfig(kindID string, config map[string]any) []domain.Issue {
	k, ok := catalog[kindID]
	if !ok {
		return []domain.Issue{domain.Issuef(domain.CodeBadPatch, kindID, "unknown kind %q", kindID)}
	}
	if err := schema.Validate(k.Config, config); err != nil {
		return []domain.Issue{domain.Issuef(domain.CodeBadPatch, kindID, "config: %s", err.Error())}
	}
	return nil
}
