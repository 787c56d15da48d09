package flow

// Node kinds with special meaning to the compiler. Any other kind is a
// domain category used for template selection during lowering.
const (
	// KindAccount marks a node that lowers to a persisted state record
	// instead of an executable instruction module.
	KindAccount = "account"

	// KindStart marks a designated entry node in the editor. The
	// compiler treats it like any other behavioral node.
	KindStart = "start"
)

// Port is a typed, named attachment point on a node. Port ids are unique
// within their owning node. Ports are immutable once created.
type Port struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Node is a typed unit in the module graph. Kind drives both
// type-compatibility defaults in the editor and template selection in
// the lowering pass. A node owns its ports; connections reference them
// by id only.
type Node struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Inputs  []Port `json:"inputs,omitempty"`
	Outputs []Port `json:"outputs,omitempty"`
}

// IsAccount reports whether the node lowers to a state record.
func (n Node) IsAccount() bool { return n.Kind == KindAccount }

// Input returns the input port with the given id.
func (n Node) Input(id string) (Port, bool) {
	for _, p := range n.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// Output returns the output port with the given id.
func (n Node) Output(id string) (Port, bool) {
	for _, p := range n.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// Connection is a directed edge from one node's output port to another
// node's input port. Endpoints are weak references by id; consumers must
// resolve-or-skip rather than assume referential integrity.
type Connection struct {
	ID           string `json:"id"`
	SourceNodeID string `json:"source_node_id"`
	SourcePortID string `json:"source_port_id"`
	TargetNodeID string `json:"target_node_id"`
	TargetPortID string `json:"target_port_id"`
}

// Graph is the snapshot passed into every core operation. The core never
// mutates it; each call is a pure function of its input.
type Graph struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// NodeByID returns the node with the given id.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIndex builds an id → node lookup map for the snapshot.
func NodeIndex(nodes []Node) map[string]Node {
	idx := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	return idx
}

// Behavioral returns the nodes that lower to instruction modules, in
// input order.
func Behavioral(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if !n.IsAccount() {
			out = append(out, n)
		}
	}
	return out
}

// Accounts returns the account-like nodes, in input order.
func Accounts(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.IsAccount() {
			out = append(out, n)
		}
	}
	return out
}

// ResolveEndpoints reports whether both endpoints of c resolve to an
// existing node and a port owned by that node.
func ResolveEndpoints(idx map[string]Node, c Connection) (src, dst Node, srcPort, dstPort Port, ok bool) {
	src, okS := idx[c.SourceNodeID]
	dst, okD := idx[c.TargetNodeID]
	if !okS || !okD {
		return Node{}, Node{}, Port{}, Port{}, false
	}
	srcPort, okS = src.Output(c.SourcePortID)
	dstPort, okD = dst.Input(c.TargetPortID)
	if !okS || !okD {
		return Node{}, Node{}, Port{}, Port{}, false
	}
	return src, dst, srcPort, dstPort, true
}
