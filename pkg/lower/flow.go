package lower

import "github.com/anchorsmith/anchorsmith/pkg/flow"

// computeFlow derives the ProgramFlow summary for a snapshot.
//
// Entry points are behavioral nodes no connection targets. The execution
// order comes from the same dependency-first traversal the analyzer
// uses, restricted to behavioral nodes, so the two always agree for an
// acyclic snapshot. Data-flow records are emitted per connection whose
// endpoints resolve; anything dangling is skipped.
func computeFlow(nodes []flow.Node, connections []flow.Connection) ProgramFlow {
	behavioral := flow.Behavioral(nodes)

	hasIncoming := make(map[string]bool)
	for _, c := range connections {
		hasIncoming[c.TargetNodeID] = true
	}

	entryPoints := []string{}
	ids := make([]string, len(behavioral))
	for i, n := range behavioral {
		ids[i] = n.ID
		if !hasIncoming[n.ID] {
			entryPoints = append(entryPoints, n.ID)
		}
	}

	deps := flow.Dependencies(behavioral, connections)

	idx := flow.NodeIndex(nodes)
	dataFlow := []DataFlowEdge{}
	for _, c := range connections {
		src, dst, srcPort, _, ok := flow.ResolveEndpoints(idx, c)
		if !ok {
			continue
		}
		dataFlow = append(dataFlow, DataFlowEdge{
			From:     src.Name,
			To:       dst.Name,
			DataType: srcPort.Type,
			Required: true,
		})
	}

	return ProgramFlow{
		EntryPoints:    entryPoints,
		ExecutionOrder: flow.ExecutionOrder(ids, deps),
		DataFlow:       dataFlow,
	}
}
