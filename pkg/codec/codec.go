/*
Package codec implements the interchange document used for save/load and as
the planner's structural grounding context.

The document deliberately omits derived fields: roles are always recomputed
on import, and labels are regenerated when the document carries none. A
round trip therefore reproduces an observationally identical graph (ids,
kinds, configs, positions) without trusting stale derived data.
*/
package codec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/label"
)

// Document is the wire form of a graph.
type Document struct {
	Name  string         `json:"name" yaml:"name"`
	Nodes []DocumentNode `json:"nodes" yaml:"nodes"`
	Edges []domain.Edge  `json:"edges" yaml:"edges"`
}

// DocumentNode is the wire form of a node. Role is intentionally absent; it
// is derived from Kind on import.
type DocumentNode struct {
	ID       string          `json:"id" yaml:"id"`
	Kind     string          `json:"kind" yaml:"kind"`
	Label    string          `json:"label,omitempty" yaml:"label,omitempty"`
	Position domain.Position `json:"position" yaml:"position"`
	Config   map[string]any  `json:"config,omitempty" yaml:"config,omitempty"`
}

// FromGraph converts a graph to its interchange form.
func FromGraph(g domain.Graph) Document {
	doc := Document{Name: g.Name}
	doc.Nodes = make([]DocumentNode, len(g.Nodes))
	for i, n := range g.Nodes {
		doc.Nodes[i] = DocumentNode{
			ID:       n.ID,
			Kind:     n.Kind,
			Label:    n.Label,
			Position: n.Position,
			Config:   n.Config,
		}
	}
	doc.Edges = append(doc.Edges, g.Edges...)
	return doc
}

// ToGraph converts an interchange document back into a graph, recomputing
// roles and filling in any missing labels.
func (d Document) ToGraph() domain.Graph {
	g := domain.Graph{Name: d.Name}
	g.Nodes = make([]domain.Node, len(d.Nodes))
	for i, dn := range d.Nodes {
		n := domain.Node{
			ID:       dn.ID,
			Kind:     dn.Kind,
			Role:     domain.RoleFromKind(dn.Kind),
			Label:    dn.Label,
			Position: dn.Position,
			Config:   dn.Config,
		}
		if n.Label == "" {
			n.Label = label.Generate(n.Kind, n.Config)
		}
		g.Nodes[i] = n
	}
	g.Edges = append(g.Edges, d.Edges...)
	return g.Clone()
}

// MarshalJSON serializes the graph as an indented interchange document.
func MarshalJSON(g domain.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(FromGraph(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return data, nil
}

// UnmarshalJSON parses an interchange document.
func UnmarshalJSON(data []byte) (domain.Graph, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Graph{}, fmt.Errorf("failed to parse graph document: %w", err)
	}
	return doc.ToGraph(), nil
}

// MarshalYAML serializes the graph as a YAML interchange document.
func MarshalYAML(g domain.Graph) ([]byte, error) {
	data, err := yaml.Marshal(FromGraph(g))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return data, nil
}

// UnmarshalYAML parses a YAML interchange document.
func UnmarshalYAML(data []byte) (domain.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Graph{}, fmt.Errorf("failed to parse graph document: %w", err)
	}
	return doc.ToGraph(), nil
}
