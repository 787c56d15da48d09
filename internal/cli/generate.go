package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anchorsmith/anchorsmith/pkg/graphio"
	"github.com/anchorsmith/anchorsmith/pkg/lower"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output      string
		programName string
		noCache     bool
		refresh     bool
		browse      bool
	)

	cmd := &cobra.Command{
		Use:   "generate [graph.json]",
		Short: "Lower a graph into an Anchor program bundle",
		Long: `Lower a graph into an Anchor program bundle.

The bundle contains one instruction module per behavioral node, the
account state module, the program entry module, a TypeScript test
suite, and the Cargo and Anchor manifests. Output is byte-identical
across runs for the same graph and options.

Invalid connections are reported but never abort generation; what the
generator cannot resolve it skips.`,
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

			opts := pipeline.Options{ProgramName: programName, Refresh: refresh}

			for _, issue := range pipeline.ValidateGraph(g) {
				printWarning("%s: %s", issue.ConnectionID, issue.Reason)
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Generating program...")
			spinner.Start()
			artifact, cacheHit, err := runner.GenerateWithCacheInfo(cmd.Context(), g, opts)
			if err != nil {
				spinner.StopWithError("Generation failed")
				return fmt.Errorf("generate: %w", err)
			}
			spinner.Stop()

			if browse {
				model := NewArtifactModel(artifact)
				if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
					return fmt.Errorf("browse artifact: %w", err)
				}
				return nil
			}

			if output == "" {
				output = artifact.ProgramName
			}
			if err := writeBundle(artifact, output); err != nil {
				return err
			}

			printSuccess("Generated %s", artifact.ProgramName)
			printStats(len(g.Nodes), len(g.Connections), cacheHit)
			for _, f := range artifact.Files {
				printFile(filepath.Join(output, f.Name))
			}
			printNextStep("Build the program", "cd "+output+" && anchor build")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: the program name)")
	cmd.Flags().StringVar(&programName, "program-name", "", "name of the generated crate")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().BoolVar(&browse, "browse", false, "browse the generated files interactively instead of writing them")

	return cmd
}

// writeBundle writes the artifact files under dir, creating parent
// directories as needed.
func writeBundle(artifact *lower.Artifact, dir string) error {
	for _, f := range artifact.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
