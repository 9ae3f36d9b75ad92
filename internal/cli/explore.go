package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/pipeline"
	"github.com/matzehuels/stakemap/pkg/render"
)

// exploreCommand creates the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		vf      viewFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore [dataset]",
		Short: "Explore the graph interactively",
		Long: `Explore opens a terminal view of the graph. Select a node to highlight its
direct neighbors, then narrow the view with search, thresholds and filters.

Keys:
  ↑/↓ j/k   move              enter  select / deselect
  esc       clear selection   /      search
  + / -     threshold         s      cycle stakeholder
  d         direct only       m      overlap / explicit
  l         cycle layout      e      export snapshot
  q         quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg()
			st, err := vf.state(cmd, cfg)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, datasetArg(args), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ds, err := runner.Load(ctx, false)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Format:    render.Format(cfg.Export.Format),
				Export:    true,
				ExportDir: cfg.Export.Dir,
			}
			model := NewExploreModel(ds, st, exportWith(ctx, runner, opts))
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	vf.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// exportWith renders and writes snapshots of explorer views.
func exportWith(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) exportFunc {
	return func(v explore.View) (render.Result, error) {
		data, _, err := runner.RenderWithCacheInfo(ctx, v, opts)
		if err != nil {
			return render.Result{}, err
		}
		return runner.Export(ctx, data, opts)
	}
}
