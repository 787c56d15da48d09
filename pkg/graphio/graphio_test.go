package graphio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

func sampleGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{
				ID: "n1", Kind: flow.KindAccount, Name: "Vault",
				Outputs: []flow.Port{{ID: "p1", Name: "state", Type: flow.TypeAccount}},
			},
			{
				ID: "n2", Kind: "transfer", Name: "Deposit",
				Inputs: []flow.Port{{ID: "p2", Name: "vault", Type: flow.TypeAccount}},
			},
		},
		Connections: []flow.Connection{
			{ID: "c1", SourceNodeID: "n1", SourcePortID: "p1", TargetNodeID: "n2", TargetPortID: "p2"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}

	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}

	if len(got.Nodes) != 2 || len(got.Connections) != 1 {
		t.Fatalf("round trip lost elements: %+v", got)
	}
	if got.Nodes[0].Outputs[0].Type != flow.TypeAccount {
		t.Errorf("port type = %q, want account", got.Nodes[0].Outputs[0].Type)
	}
	if got.Connections[0].ID != "c1" {
		t.Errorf("connection id = %q, want c1", got.Connections[0].ID)
	}
}

func TestReadGraph_BackfillsConnectionIDs(t *testing.T) {
	raw := []byte(`{
	  "nodes": [{"id": "a", "kind": "transfer", "name": "A"}],
	  "connections": [{"source_node_id": "a", "source_port_id": "p", "target_node_id": "b", "target_port_id": "q"}]
	}`)

	g, err := ReadGraph(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadGraph() error: %v", err)
	}
	if g.Connections[0].ID == "" {
		t.Error("missing connection id was not backfilled")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := sampleGraph()

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if len(got.Nodes) != len(g.Nodes) {
		t.Errorf("node count = %d, want %d", len(got.Nodes), len(g.Nodes))
	}
}

func TestReadGraph_MalformedJSON(t *testing.T) {
	if _, err := ReadGraph(bytes.NewReader([]byte("{not json"))); err == nil {
		t.Error("ReadGraph() accepted malformed JSON")
	}
}
