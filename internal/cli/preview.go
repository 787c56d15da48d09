package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anchorsmith/anchorsmith/pkg/graphio"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		detailed   bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "preview [graph.json]",
		Short: "Render a graph as a DOT or SVG diagram",
		Long: `Render a graph as a node-link diagram.

Account nodes are drawn as cylinders, behavioral nodes as rounded
boxes, and every connection is labeled with the type of its source
port. Dangling connections are drawn dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			opts := pipeline.Options{
				Formats:  parseFormats(formatsStr),
				Detailed: detailed,
				Refresh:  refresh,
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering preview...")
			spinner.Start()
			previews, cacheHit, err := runner.RenderPreviewWithCacheInfo(cmd.Context(), g, opts)
			if err != nil {
				spinner.StopWithError("Preview failed")
				return fmt.Errorf("preview: %w", err)
			}
			spinner.Stop()

			base := output
			if base == "" {
				base = strings.TrimSuffix(args[0], ".json")
			}
			for _, format := range opts.Formats {
				path := base + "." + format
				if err := os.WriteFile(path, previews[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			printStats(len(g.Nodes), len(g.Connections), cacheHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (format extension is appended)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node kinds and port counts in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")

	return cmd
}
