package domain

// Op identifies a patch operation. The wire names match the interchange
// contract used by the canvas and the planner.
type Op string

const (
	OpAddNode    Op = "ADD_NODE"
	OpUpdateNode Op = "UPDATE_NODE"
	OpRemoveNode Op = "REMOVE_NODE"
	OpAddEdge    Op = "ADD_EDGE"
	OpRemoveEdge Op = "REMOVE_EDGE"
	OpRewire     Op = "REWIRE"
	OpSetName    Op = "SET_NAME"
	OpBulk       Op = "BULK"
)

// Patch is a single described mutation intent. Exactly one operation's
// fields are meaningful; the rest stay zero.
type Patch struct {
	Op Op `json:"op" yaml:"op"`

	// ADD_NODE
	Node *Node `json:"node,omitempty" yaml:"node,omitempty"`

	// UPDATE_NODE / REMOVE_NODE
	NodeID string `json:"node_id,omitempty" yaml:"node_id,omitempty"`

	// UPDATE_NODE: Config is shallow-merged into the node's config,
	// Position replaces the node's position wholesale, Label (when non-nil)
	// overrides the derived label for this mutation.
	Config   map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	Position *Position      `json:"position,omitempty" yaml:"position,omitempty"`
	Label    *string        `json:"label,omitempty" yaml:"label,omitempty"`

	// ADD_EDGE
	Edge *Edge `json:"edge,omitempty" yaml:"edge,omitempty"`

	// REMOVE_EDGE / REWIRE (EdgeID optional for REWIRE)
	EdgeID string `json:"edge_id,omitempty" yaml:"edge_id,omitempty"`

	// REWIRE: detach the endpoint currently at From and attach it to To.
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`

	// SET_NAME
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// BULK
	Ops []Patch `json:"ops,omitempty" yaml:"ops,omitempty"`
}

// AddNode builds an ADD_NODE patch.
func AddNode(n Node) Patch { return Patch{Op: OpAddNode, Node: &n} }

// RemoveNode builds a REMOVE_NODE patch.
func RemoveNode(id string) Patch { return Patch{Op: OpRemoveNode, NodeID: id} }

// AddEdge builds an ADD_EDGE patch.
func AddEdge(e Edge) Patch { return Patch{Op: OpAddEdge, Edge: &e} }

// RemoveEdge builds a REMOVE_EDGE patch.
func RemoveEdge(id string) Patch { return Patch{Op: OpRemoveEdge, EdgeID: id} }

// SetName builds a SET_NAME patch.
func SetName(name string) Patch { return Patch{Op: OpSetName, Name: name} }

// Bulk builds an all-or-nothing BULK patch.
func Bulk(ops ...Patch) Patch { return Patch{Op: OpBulk, Ops: ops} }
