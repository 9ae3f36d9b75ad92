package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/internal/server"
	"github.com/matzehuels/stakemap/pkg/config"
	"github.com/matzehuels/stakemap/pkg/observability"
)

// serveCommand creates the serve command: the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		vf      viewFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve views over HTTP",
		Long: `Serve starts a JSON API over the dataset. The view flags set the base state;
each request may override it with query parameters (mode, layout, selected,
search, threshold, stakeholder, direct_only).

  GET /api/view  /api/stats  /api/stakeholders  /api/nodes/{id}
  GET /api/export.png  /api/export.svg  /api/export.dot
  GET /healthz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg()
			st, err := vf.state(cmd, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, datasetArg(args), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			// Fail fast on a broken source instead of on the first request.
			ds, err := runner.Load(ctx, false)
			if err != nil {
				return err
			}
			c.Logger.Info("serving dataset", "source", runner.Source.Describe(), "modules", len(ds.Modules))

			counters := &observability.Counters{}
			observability.Register(counters)
			return server.New(runner, st, c.Logger).WithCounters(counters).ListenAndServe(ctx, addr)
		},
	}

	vf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
