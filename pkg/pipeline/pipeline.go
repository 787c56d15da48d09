// Package pipeline provides the core compile pipeline for Anchorsmith.
//
// It implements the complete validate → analyze → generate → preview
// flow shared by the CLI and the HTTP server. Centralizing it keeps the
// two entry points byte-identical in behavior and gives both the same
// caching.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Validate: check every connection against the type rules
//  2. Analyze: dependencies, execution order, cycles, isolated nodes
//  3. Generate: lower the graph into the Anchor artifact bundle
//  4. Preview: optionally render the graph as a DOT/SVG diagram
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    ProgramName: "vault_program",
//	    Formats:     []string{"svg"},
//	})
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anchorsmith/anchorsmith/pkg/cache"
	"github.com/anchorsmith/anchorsmith/pkg/flow"
	"github.com/anchorsmith/anchorsmith/pkg/lower"
)

// Preview format constants.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported preview formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// Options contains all configuration for the compile pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// ProgramName names the generated crate. Defaults to
	// lower.DefaultProgramName.
	ProgramName string `json:"program_name,omitempty"`

	// Formats lists preview formats to render. Empty means no preview.
	Formats []string `json:"formats,omitempty"`

	// Detailed includes node kinds and port counts in preview labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses the cache for all stages.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.ProgramName == "" {
		o.ProgramName = lower.DefaultProgramName
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", f)
		}
	}
	return nil
}

// BundleKeyOpts returns cache key options for artifact generation.
func (o *Options) BundleKeyOpts() cache.BundleKeyOpts {
	return cache.BundleKeyOpts{ProgramName: o.ProgramName}
}

// PreviewKeyOpts returns cache key options for a preview format.
func (o *Options) PreviewKeyOpts(format string) cache.PreviewKeyOpts {
	key := format
	if o.Detailed {
		key += ":detailed"
	}
	return cache.PreviewKeyOpts{Format: key}
}

// Issue reports one connection that failed validation.
type Issue struct {
	ConnectionID string `json:"connection_id"`
	Reason       string `json:"reason"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Issues lists connections that failed validation. A non-empty
	// list does not abort the run; generation skips what it cannot
	// resolve.
	Issues []Issue

	// Analysis is the flow analysis of the graph.
	Analysis flow.Analysis

	// Artifact is the generated bundle.
	Artifact *lower.Artifact

	// Previews contains rendered diagrams keyed by format.
	Previews map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	AnalyzeTime  time.Duration
	GenerateTime time.Duration
	PreviewTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalysisHit bool // Whether the analysis came from cache
	BundleHit   bool // Whether the artifact bundle came from cache
	PreviewHit  bool // Whether all previews came from cache
}

// ValidateGraph checks every resolvable connection against the type
// rules, replaying the connection list in order so duplicate and
// occupied-input checks see only earlier connections. Connections with
// unresolvable endpoints are skipped, matching the generator.
func ValidateGraph(g flow.Graph) []Issue {
	idx := flow.NodeIndex(g.Nodes)

	var issues []Issue
	for i, c := range g.Connections {
		src, dst, srcPort, dstPort, ok := flow.ResolveEndpoints(idx, c)
		if !ok {
			continue
		}
		res := flow.ValidateConnection(src, srcPort, dst, dstPort, g.Connections[:i])
		if !res.Valid {
			issues = append(issues, Issue{ConnectionID: c.ID, Reason: res.Reason})
		}
	}
	return issues
}
