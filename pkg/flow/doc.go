// Package flow contains the graph core of Anchorsmith: the module-graph
// data model, the port type-compatibility table, the connection
// validator, and the flow analyzer.
//
// Everything in this package operates on an immutable Graph snapshot and
// returns freshly constructed results. There is no shared mutable state,
// so concurrent calls from multiple editor sessions are safe without
// locking.
//
// # Resilience
//
// Connections are weak references by id. A connection whose endpoints no
// longer resolve to a node or port (for example after a node was deleted
// elsewhere) is skipped by the analyzer and the lowering pass rather
// than failing the call. Cycles are reported as data, never as errors.
package flow
