package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anchorsmith/anchorsmith/pkg/graphio"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph.json]",
		Short: "Report dependencies, execution order, cycles, and isolated nodes",
		Long: `Report dependencies, execution order, cycles, and isolated nodes.

The analysis never fails on a malformed graph: cycles are reported as
data, dangling connections are ignored, and nodes inside cycles are
simply absent from the execution order.

Results are cached locally keyed by graph content hash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			p := newProgress(c.Logger)
			analysis, cacheHit, err := runner.AnalyzeWithCacheInfo(cmd.Context(), g, pipeline.Options{Refresh: refresh})
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
			p.done(fmt.Sprintf("Analyzed %d nodes", len(g.Nodes)))

			printStats(len(g.Nodes), len(g.Connections), cacheHit)
			printDetail("execution order: %s", strings.Join(analysis.ExecutionOrder, " → "))
			if len(analysis.Cycles) > 0 {
				printWarning("%d cycle(s) detected", len(analysis.Cycles))
				for _, cycle := range analysis.Cycles {
					printDetail("cycle: %s", strings.Join(cycle, " → "))
				}
			}
			if len(analysis.IsolatedNodes) > 0 {
				printDetail("isolated: %s", strings.Join(analysis.IsolatedNodes, ", "))
			}

			if output != "" {
				data, err := json.MarshalIndent(analysis, "", "  ")
				if err != nil {
					return fmt.Errorf("encode analysis: %w", err)
				}
				if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printFile(output)
			}

			printNextStep("Generate the program", "anchorsmith generate "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the analysis as JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}
