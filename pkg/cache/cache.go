// Package cache provides pluggable result caching for the compile
// pipeline: file-backed for CLI runs, Redis-backed for server
// deployments, and a null backend to disable caching entirely.
//
// Keys are derived from content hashes of the graph snapshot plus the
// options that influence the cached stage, so a changed graph or option
// never serves stale output.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default TTLs per cached stage. Analyses are cheap to recompute;
// generated bundles and rendered previews are kept longer.
const (
	TTLAnalysis = 1 * time.Hour
	TTLBundle   = 24 * time.Hour
	TTLPreview  = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BundleKeyOpts are the generation options that shape a cached bundle.
type BundleKeyOpts struct {
	ProgramName string `json:"program_name"`
}

// PreviewKeyOpts are the rendering options that shape a cached preview.
type PreviewKeyOpts struct {
	Format string `json:"format"`
}

// Keyer mints cache keys for pipeline stages.
type Keyer interface {
	// AnalysisKey keys a flow analysis by graph content hash.
	AnalysisKey(graphHash string) string

	// BundleKey keys a generated artifact bundle.
	BundleKey(graphHash string, opts BundleKeyOpts) string

	// PreviewKey keys a rendered flow preview.
	PreviewKey(graphHash string, opts PreviewKeyOpts) string
}

// DefaultKeyer derives keys by hashing the stage inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// AnalysisKey implements Keyer.
func (k *DefaultKeyer) AnalysisKey(graphHash string) string {
	return fmt.Sprintf("analysis:%s", graphHash)
}

// BundleKey implements Keyer.
func (k *DefaultKeyer) BundleKey(graphHash string, opts BundleKeyOpts) string {
	return hashKey("bundle", graphHash, opts)
}

// PreviewKey implements Keyer.
func (k *DefaultKeyer) PreviewKey(graphHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", graphHash, opts)
}
