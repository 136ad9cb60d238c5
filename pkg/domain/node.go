package domain

import "strings"

// Role is the coarse category of a node, derived mechanically from its kind.
// It drives structural validation only; execution semantics live elsewhere.
type Role string

const (
	RoleTrigger Role = "TRIGGER"
	RoleLogic   Role = "LOGIC"
	RoleAI      Role = "AI"
	RoleAction  Role = "ACTION"
)

// RoleFromKind derives the role from the kind's category prefix
// (e.g. "trigger.schedule" -> TRIGGER). Unknown categories fall back to
// LOGIC, which is inert for validation purposes.
func RoleFromKind(kind string) Role {
	category, _, _ := strings.Cut(kind, ".")
	switch category {
	case "trigger":
		return RoleTrigger
	case "logic":
		return RoleLogic
	case "ai":
		return RoleAI
	case "action":
		return RoleAction
	default:
		return RoleLogic
	}
}

// Position is canvas layout data. It never affects validity.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a single typed step in the workflow graph.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`

	// Role is derived from Kind; it is recomputed on add/import and should
	// never be set by hand.
	Role Role `json:"role,omitempty" yaml:"role,omitempty"`

	// Label is the display string, at most 24 visible characters. It is
	// derived from Kind and Config unless explicitly overridden.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	Position Position `json:"position" yaml:"position"`

	// Config holds kind-specific settings.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	c := n
	if n.Config != nil {
		c.Config = make(map[string]any, len(n.Config))
		for k, v := range n.Config {
			c.Config[k] = v
		}
	}
	return c
}
