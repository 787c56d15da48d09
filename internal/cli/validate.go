package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchorsmith/anchorsmith/pkg/graphio"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check every connection of a graph against the type rules",
		Long: `Check every connection of a graph against the type rules.

Each connection is validated in order: self-connections, incompatible
port types, duplicates, and occupied input ports. Connections whose
endpoints cannot be resolved are skipped, matching the generator.

By default an invalid graph is reported but the command still exits
zero, because generation tolerates invalid connections. Use --strict to
exit non-zero when any issue is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			issues := pipeline.ValidateGraph(g)
			printStats(len(g.Nodes), len(g.Connections), false)

			if len(issues) == 0 {
				printSuccess("All connections are valid")
				return nil
			}

			printWarning("%d invalid connection(s)", len(issues))
			for _, issue := range issues {
				printDetail("%s: %s", issue.ConnectionID, issue.Reason)
			}
			if strict {
				return fmt.Errorf("graph has %d invalid connection(s)", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any connection is invalid")

	return cmd
}
