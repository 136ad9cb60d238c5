package domain

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the full editable document: an ordered node list (order is
// paint/z-order only), an edge list, and a display name.
type Graph struct {
	Name  string `json:"name" yaml:"name"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NewGraph creates an empty graph with the given name.
func NewGraph(name string) Graph {
	return Graph{Name: name}
}

// Clone returns a deep copy, structurally independent of the receiver.
// Snapshots handed to history or observers must go through here so later
// edits cannot reach back into them.
func (g Graph) Clone() Graph {
	c := Graph{Name: g.Name}
	if g.Nodes != nil {
		c.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			c.Nodes[i] = n.Clone()
		}
	}
	if g.Edges != nil {
		c.Edges = make([]Edge, len(g.Edges))
		copy(c.Edges, g.Edges)
	}
	return c
}

// FindNode returns the index of the node with the given id, or -1.
func (g Graph) FindNode(id string) int {
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// FindEdge returns the index of the edge with the given id, or -1.
func (g Graph) FindEdge(id string) int {
	for i, e := range g.Edges {
		if e.ID == id {
			return i
		}
	}
	return -1
}
