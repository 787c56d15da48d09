package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anchorsmith/anchorsmith/pkg/cache"
	"github.com/anchorsmith/anchorsmith/pkg/flow"
	"github.com/anchorsmith/anchorsmith/pkg/graphio"
	"github.com/anchorsmith/anchorsmith/pkg/lower"
	"github.com/anchorsmith/anchorsmith/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete validate → analyze → generate → preview
// pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g flow.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		GraphHash: GraphHash(g),
	}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Connections)

	// Stage 1: Validate. Cheap, never cached, never fatal.
	result.Issues = ValidateGraph(g)
	if len(result.Issues) > 0 {
		r.Logger.Warn("graph has invalid connections", "issues", len(result.Issues))
	}

	// Stage 2: Analyze
	analyzeStart := time.Now()
	analysis, analysisHit, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.AnalysisHit = analysisHit

	r.Logger.Info("analyzed flow",
		"nodes", len(g.Nodes),
		"order", len(analysis.ExecutionOrder),
		"cycles", len(analysis.Cycles),
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Generate
	generateStart := time.Now()
	artifact, bundleHit, err := r.GenerateWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Artifact = artifact
	result.Stats.GenerateTime = time.Since(generateStart)
	result.CacheInfo.BundleHit = bundleHit

	r.Logger.Info("generated bundle",
		"program", artifact.ProgramName,
		"files", len(artifact.Files),
		"duration", result.Stats.GenerateTime)

	// Stage 4: Preview (optional)
	if len(opts.Formats) > 0 {
		previewStart := time.Now()
		previews, previewHit, err := r.RenderPreviewWithCacheInfo(ctx, g, opts)
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		result.Previews = previews
		result.Stats.PreviewTime = time.Since(previewStart)
		result.CacheInfo.PreviewHit = previewHit

		r.Logger.Info("rendered previews",
			"formats", opts.Formats,
			"duration", result.Stats.PreviewTime)
	}

	return result, nil
}

// AnalyzeWithCacheInfo runs the flow analysis with caching and returns
// cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (flow.Analysis, bool, error) {
	cacheKey := r.Keyer.AnalysisKey(GraphHash(g))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached flow.Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
			// Undecodable entry, recompute.
		}
	}

	analysis := flow.Analyze(g.Nodes, g.Connections)

	if data, err := json.Marshal(analysis); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis)
	}

	return analysis, false, nil
}

// Analyze is a convenience wrapper that discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g flow.Graph, opts Options) (flow.Analysis, error) {
	analysis, _, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	return analysis, err
}

// GenerateWithCacheInfo lowers the graph with caching and returns cache
// hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (*lower.Artifact, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.BundleKey(GraphHash(g), opts.BundleKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached lower.Artifact
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
		}
	}

	artifact, err := lower.Generate(g, lower.Options{ProgramName: opts.ProgramName})
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(artifact); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLBundle)
	}

	return artifact, false, nil
}

// Generate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, g flow.Graph, opts Options) (*lower.Artifact, error) {
	artifact, _, err := r.GenerateWithCacheInfo(ctx, g, opts)
	return artifact, err
}

// RenderPreviewWithCacheInfo renders the requested preview formats with
// caching and returns cache hit info. The hit flag is true only when
// every format came from cache.
func (r *Runner) RenderPreviewWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	graphHash := GraphHash(g)

	allCached := true
	previews := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.PreviewKey(graphHash, opts.PreviewKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit && !opts.Refresh {
			previews[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(previews) == len(opts.Formats) {
		return previews, true, nil
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})

	rendered := make(map[string][]byte)
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			rendered[format] = []byte(dot)
		case FormatSVG:
			svg, err := nodelink.RenderSVG(dot)
			if err != nil {
				return nil, false, err
			}
			rendered[format] = svg
		}
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.PreviewKey(graphHash, opts.PreviewKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPreview)
	}

	return rendered, false, nil
}

// RenderPreview is a convenience wrapper that discards the cache hit
// info.
func (r *Runner) RenderPreview(ctx context.Context, g flow.Graph, opts Options) (map[string][]byte, error) {
	previews, _, err := r.RenderPreviewWithCacheInfo(ctx, g, opts)
	return previews, err
}

// GraphHash fingerprints a graph snapshot for cache keys and API
// responses.
func GraphHash(g flow.Graph) string {
	data, _ := graphio.MarshalGraph(g)
	return cache.Hash(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
