package flow

import "slices"

// Analysis is the derived metadata for one graph snapshot. It is
// recomputed from scratch on every call and never persisted.
type Analysis struct {
	// Dependencies maps each node id to the source-node ids of all
	// connections targeting it, in connection insertion order.
	Dependencies map[string][]string `json:"dependencies"`

	// ExecutionOrder is a dependency-first linearization of all node
	// ids. For acyclic graphs every connection source precedes its
	// target. Inside a cycle the order is a best-effort partial order
	// (see Analyze).
	ExecutionOrder []string `json:"execution_order"`

	// Cycles lists each detected cycle as the node ids along the cycle
	// path. Overlapping and rotated duplicates may appear when a cycle
	// is reachable from several starting nodes.
	Cycles [][]string `json:"cycles"`

	// IsolatedNodes lists nodes that are the endpoint of zero
	// connections.
	IsolatedNodes []string `json:"isolated_nodes"`
}

// Analyze derives the dependency map, execution order, cycle list, and
// isolated-node list from a graph snapshot.
//
// Cycles are reported as data, never as errors. The ordering traversal
// guards against re-entering a node that is currently being visited
// purely to prevent infinite recursion; on cyclic subgraphs this
// truncates recursion and yields a partial order. The truncation is
// deterministic: nodes are expanded in input order and dependencies in
// connection insertion order.
//
// Connections whose endpoints do not resolve to nodes in the snapshot
// are skipped. Cost is O(N+E) for the dependency map and isolation
// check; cycle detection restarts a path-tracked DFS from every node and
// is O(N·(N+E)) worst case, acceptable for editor-scale graphs.
func Analyze(nodes []Node, connections []Connection) Analysis {
	deps := Dependencies(nodes, connections)

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	return Analysis{
		Dependencies:   deps,
		ExecutionOrder: ExecutionOrder(ids, deps),
		Cycles:         detectCycles(ids, deps),
		IsolatedNodes:  isolatedNodes(nodes, connections),
	}
}

// Dependencies builds the node id → ordered dependency list map. Every
// node in the snapshot gets an entry, empty when nothing targets it.
// Connections referencing unknown nodes are skipped; repeated sources
// are recorded once.
func Dependencies(nodes []Node, connections []Connection) map[string][]string {
	deps := make(map[string][]string, len(nodes))
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		deps[n.ID] = []string{}
		known[n.ID] = true
	}

	for _, c := range connections {
		if !known[c.SourceNodeID] || !known[c.TargetNodeID] {
			continue
		}
		if !slices.Contains(deps[c.TargetNodeID], c.SourceNodeID) {
			deps[c.TargetNodeID] = append(deps[c.TargetNodeID], c.SourceNodeID)
		}
	}
	return deps
}

// ExecutionOrder linearizes ids so that each node appears after its
// dependencies. Nodes are expanded depth-first in the given order; a
// node currently being visited is not re-entered, so cyclic subgraphs
// produce a truncated partial order instead of an error.
func ExecutionOrder(ids []string, deps map[string][]string) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(ids))
	order := make([]string, 0, len(ids))

	var visit func(id string)
	visit = func(id string) {
		if color[id] != white {
			return
		}
		color[id] = gray
		for _, dep := range deps[id] {
			visit(dep)
		}
		color[id] = black
		order = append(order, id)
	}

	for _, id := range ids {
		visit(id)
	}
	return order
}

// detectCycles restarts a path-tracked DFS from every node and records
// the path suffix each time a node already on the current path is
// revisited.
func detectCycles(ids []string, deps map[string][]string) [][]string {
	cycles := [][]string{}

	for _, start := range ids {
		var path []string
		onPath := make(map[string]int)
		done := make(map[string]bool)

		var visit func(id string)
		visit = func(id string) {
			if at, ok := onPath[id]; ok {
				cycle := make([]string, len(path)-at)
				copy(cycle, path[at:])
				cycles = append(cycles, cycle)
				return
			}
			if done[id] {
				return
			}
			onPath[id] = len(path)
			path = append(path, id)
			for _, dep := range deps[id] {
				visit(dep)
			}
			path = path[:len(path)-1]
			delete(onPath, id)
			done[id] = true
		}

		visit(start)
	}
	return cycles
}

// isolatedNodes returns the ids of nodes no connection mentions as
// either endpoint. A connection with a dangling far end still counts as
// touching its resolvable endpoint.
func isolatedNodes(nodes []Node, connections []Connection) []string {
	touched := make(map[string]bool, len(nodes))
	for _, c := range connections {
		touched[c.SourceNodeID] = true
		touched[c.TargetNodeID] = true
	}

	isolated := []string{}
	for _, n := range nodes {
		if !touched[n.ID] {
			isolated = append(isolated, n.ID)
		}
	}
	return isolated
}
