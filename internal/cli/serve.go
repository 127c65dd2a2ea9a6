package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Endpoints:
  GET  /healthz
  POST /v1/scene              event list in, scene JSON out
  POST /v1/render/{format}    event list in, svg, json, dot or graphviz out

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, server.Config{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
				Defaults:     optionsFromConfig(cfg),
			}, c.Logger)

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Server.Addr))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
