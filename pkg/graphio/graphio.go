// Package graphio reads and writes module-graph snapshots in the
// canonical JSON format the editor exchanges with the compiler.
//
// The format is human-readable and designed for round-trip fidelity:
// import → validate → export → re-import produces identical results.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

// MarshalGraph converts a graph snapshot to indented JSON bytes.
// Node and connection order is preserved so output is deterministic.
func MarshalGraph(g flow.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph snapshot as JSON to w.
func WriteGraph(g flow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g flow.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph snapshot from r. Connections missing an
// id are assigned a fresh one; editors are not required to mint ids for
// edges they created mid-drag.
func ReadGraph(r io.Reader) (flow.Graph, error) {
	var g flow.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return flow.Graph{}, fmt.Errorf("decode: %w", err)
	}
	BackfillConnectionIDs(&g)
	return g, nil
}

// BackfillConnectionIDs assigns a fresh UUID to every connection that
// lacks one.
func BackfillConnectionIDs(g *flow.Graph) {
	for i := range g.Connections {
		if g.Connections[i].ID == "" {
			g.Connections[i].ID = uuid.NewString()
		}
	}
}

// ReadGraphFile reads a JSON file and returns the decoded snapshot.
func ReadGraphFile(path string) (flow.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// UnmarshalGraph deserializes JSON bytes to a graph snapshot.
func UnmarshalGraph(data []byte) (flow.Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}
