package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchorsmith/anchorsmith/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The API exposes the same pipeline as the CLI:

  POST /api/v1/validate   check connections against the type rules
  POST /api/v1/analyze    flow analysis
  POST /api/v1/generate   full program bundle (or one file with ?file=)
  POST /api/v1/preview    DOT/SVG diagram
  GET  /healthz           liveness probe

Configuration is read from a TOML file (--config); the --addr flag
overrides the configured listen address. The cache backend defaults to
local files and can be switched to Redis for multi-replica deployments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			srv, err := server.New(cmd.Context(), cfg, c.Logger)
			if err != nil {
				return fmt.Errorf("initialize server: %w", err)
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")

	return cmd
}
