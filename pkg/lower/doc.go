// Package lower turns a validated module graph into program source and
// build manifests: one Anchor-style Rust instruction module per
// behavioral node, account declarations for account-like nodes, an
// aggregate lib.rs, a TypeScript test suite, and the Cargo.toml and
// Anchor.toml manifests.
//
// The pass is deterministic and pure: no I/O, no randomness, no
// mutation of its input. Re-running it on an unchanged graph snapshot
// produces byte-identical output. It performs no semantic validation of
// the graph; callers are expected to have gated every stored connection
// through flow.ValidateConnection. Connections with unresolved endpoints
// are skipped, never fatal.
//
// All emission is string substitution over a closed set of templates,
// dispatched by node category. The emitted Rust and TypeScript is
// syntactically well formed but is never compiled or type-checked here.
package lower
