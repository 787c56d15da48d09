// Package cli implements the anchorsmith command-line interface.
//
// The main commands are:
//   - validate: Check every connection of a graph against the type rules
//   - analyze: Report dependencies, execution order, cycles, and isolated nodes
//   - generate: Lower a graph into an Anchor program bundle
//   - preview: Render a graph as a DOT or SVG diagram
//   - serve: Run the HTTP API
//   - cache: Manage the local result cache
//
// All commands support --verbose (-v) for debug-level logging. Results
// of the analyze, generate, and preview commands are cached locally
// keyed by graph content hash.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/anchorsmith/anchorsmith/pkg/buildinfo"
	"github.com/anchorsmith/anchorsmith/pkg/cache"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "anchorsmith"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "anchorsmith",
		Short:        "Anchorsmith compiles visual module graphs into Anchor programs",
		Long:         `Anchorsmith takes a node-and-connection graph exported from the visual canvas and compiles it into a complete Anchor program skeleton: one instruction module per node, account state, a test suite, and the package and deployment manifests.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/anchorsmith/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
