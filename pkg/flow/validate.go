package flow

import "fmt"

// Result is the outcome of validating a proposed connection. Rejection
// is expected and frequent (the editor calls this on every drag frame),
// so it is returned as data rather than an error.
type Result struct {
	Valid  bool   `json:"is_valid"`
	Reason string `json:"error,omitempty"`
}

var accepted = Result{Valid: true}

// ValidateConnection checks a proposed connection against the rules of
// the module graph. Rules are evaluated in order; the first failing rule
// wins:
//
//  1. No self connections.
//  2. Port types must be compatible (see [Compatible]).
//  3. No duplicate of an existing connection quadruple.
//  4. An input port may be the target of at most one connection.
//
// The existing connections are the graph's current edge set; they are
// not themselves re-validated. ValidateConnection has no side effects
// and allocates only on rejection.
func ValidateConnection(srcNode Node, srcPort Port, dstNode Node, dstPort Port, existing []Connection) Result {
	if srcNode.ID == dstNode.ID {
		return Result{Reason: "cannot connect a node to itself"}
	}

	if !Compatible(srcPort.Type, dstPort.Type) {
		return Result{Reason: fmt.Sprintf("incompatible types: %s -> %s", srcPort.Type, dstPort.Type)}
	}

	for _, c := range existing {
		if c.SourceNodeID == srcNode.ID && c.SourcePortID == srcPort.ID &&
			c.TargetNodeID == dstNode.ID && c.TargetPortID == dstPort.ID {
			return Result{Reason: "duplicate connection"}
		}
	}

	for _, c := range existing {
		if c.TargetNodeID == dstNode.ID && c.TargetPortID == dstPort.ID {
			return Result{Reason: fmt.Sprintf("input port %s is already connected", dstPort.Name)}
		}
	}

	return accepted
}
