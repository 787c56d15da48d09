package pipeline

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/anchorsmith/anchorsmith/pkg/cache"
	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

func testGraph() flow.Graph {
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

func quietRunner(c cache.Cache) *Runner {
	logger := log.New(io.Discard)
	return NewRunner(c, nil, logger)
}

func TestExecute(t *testing.T) {
	r := quietRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), testGraph(), Options{
		ProgramName: "vault_program",
		Formats:     []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.GraphHash == "" {
		t.Error("missing graph hash")
	}
	if len(result.Issues) != 0 {
		t.Errorf("unexpected issues: %v", result.Issues)
	}
	if !slices.Equal(result.Analysis.ExecutionOrder, []string{"n1", "n2"}) {
		t.Errorf("ExecutionOrder = %v", result.Analysis.ExecutionOrder)
	}
	if result.Artifact == nil || result.Artifact.ProgramName != "vault_program" {
		t.Fatalf("Artifact = %+v", result.Artifact)
	}
	if _, ok := result.Artifact.File("src/deposit.rs"); !ok {
		t.Error("bundle missing src/deposit.rs")
	}
	dot, ok := result.Previews[FormatDOT]
	if !ok || !strings.Contains(string(dot), "digraph G") {
		t.Errorf("Previews[dot] = %q", dot)
	}
	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestExecute_InvalidFormat(t *testing.T) {
	r := quietRunner(nil)
	defer r.Close()

	if _, err := r.Execute(context.Background(), testGraph(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("Execute() accepted an invalid format")
	}
}

func TestExecute_ReportsIssues(t *testing.T) {
	g := testGraph()
	// Second connection onto the same occupied input.
	g.Nodes = append(g.Nodes, flow.Node{
		ID: "n3", Kind: flow.KindAccount, Name: "Treasury",
		Outputs: []flow.Port{{ID: "p3", Name: "state", Type: flow.TypeAccount}},
	})
	g.Connections = append(g.Connections, flow.Connection{
		ID: "c2", SourceNodeID: "n3", SourcePortID: "p3", TargetNodeID: "n2", TargetPortID: "p2",
	})

	r := quietRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0].ConnectionID != "c2" {
		t.Errorf("Issues = %v, want one issue for c2", result.Issues)
	}
	// Issues never abort the run.
	if result.Artifact == nil {
		t.Error("artifact missing despite recoverable issues")
	}
}

func TestValidateGraph_SkipsDangling(t *testing.T) {
	g := testGraph()
	g.Connections = append(g.Connections, flow.Connection{
		ID: "c2", SourceNodeID: "ghost", SourcePortID: "x", TargetNodeID: "n2", TargetPortID: "p2",
	})

	if issues := ValidateGraph(g); len(issues) != 0 {
		t.Errorf("dangling connection should be skipped, got %v", issues)
	}
}

func TestAnalyzeCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := quietRunner(c)
	defer r.Close()

	g := testGraph()

	_, hit, err := r.AnalyzeWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("first analyze should miss")
	}

	analysis, hit, err := r.AnalyzeWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	if !hit {
		t.Error("second analyze should hit")
	}
	if !slices.Equal(analysis.ExecutionOrder, []string{"n1", "n2"}) {
		t.Errorf("cached ExecutionOrder = %v", analysis.ExecutionOrder)
	}

	// Refresh bypasses the cache.
	if _, hit, _ := r.AnalyzeWithCacheInfo(ctx, g, Options{Refresh: true}); hit {
		t.Error("refresh should not hit the cache")
	}
}

func TestGenerateCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := quietRunner(c)
	defer r.Close()

	g := testGraph()

	first, hit, err := r.GenerateWithCacheInfo(ctx, g, Options{ProgramName: "vault_program"})
	if err != nil {
		t.Fatalf("GenerateWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("first generate should miss")
	}

	second, hit, err := r.GenerateWithCacheInfo(ctx, g, Options{ProgramName: "vault_program"})
	if err != nil {
		t.Fatalf("GenerateWithCacheInfo error: %v", err)
	}
	if !hit {
		t.Error("second generate should hit")
	}
	if len(second.Files) != len(first.Files) {
		t.Errorf("cached bundle has %d files, want %d", len(second.Files), len(first.Files))
	}

	// A different program name is a different bundle.
	if _, hit, _ := r.GenerateWithCacheInfo(ctx, g, Options{ProgramName: "other"}); hit {
		t.Error("different options should not hit the cache")
	}
}

func TestGraphHash(t *testing.T) {
	g := testGraph()
	if GraphHash(g) != GraphHash(g) {
		t.Error("GraphHash should be deterministic")
	}

	changed := testGraph()
	changed.Nodes[0].Name = "Other"
	if GraphHash(g) == GraphHash(changed) {
		t.Error("different graphs should hash differently")
	}
}
