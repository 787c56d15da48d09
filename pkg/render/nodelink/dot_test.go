package nodelink

import (
	"strings"
	"testing"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

func previewGraph() flow.Graph {
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

func TestToDOT(t *testing.T) {
	dot := ToDOT(previewGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"n1" [label="Vault", shape=cylinder`,
		`"n2" [label="Deposit"]`,
		`"n1" -> "n2" [label="account"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(previewGraph(), Options{Detailed: true})

	if !strings.Contains(dot, "kind: transfer") {
		t.Errorf("detailed DOT missing kind line:\n%s", dot)
	}
	if !strings.Contains(dot, "in: 1") {
		t.Errorf("detailed DOT missing port counts:\n%s", dot)
	}
}

func TestToDOT_DanglingEdgeDashed(t *testing.T) {
	g := previewGraph()
	g.Connections = append(g.Connections, flow.Connection{
		ID: "c2", SourceNodeID: "ghost", SourcePortID: "x", TargetNodeID: "n2", TargetPortID: "p2",
	})

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"ghost" -> "n2" [style=dashed`) {
		t.Errorf("dangling connection should be dashed:\n%s", dot)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	g := previewGraph()
	if ToDOT(g, Options{Detailed: true}) != ToDOT(g, Options{Detailed: true}) {
		t.Error("ToDOT should be deterministic")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="134pt" height="116pt" viewBox="0.00 0.00 134.00 116.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 134.00 116.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="134" height="116"`) {
		t.Errorf("dimensions not normalized: %s", out)
	}
}

func TestNormalizeViewBox_NoMatch(t *testing.T) {
	in := []byte("<svg>no viewbox</svg>")
	if string(normalizeViewBox(in)) != string(in) {
		t.Error("input without viewBox should pass through unchanged")
	}
}
