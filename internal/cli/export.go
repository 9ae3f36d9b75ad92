package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/pipeline"
	"github.com/matzehuels/stakemap/pkg/render"
)

// exportCommand creates the export command: write a snapshot file.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		vf       viewFlags
		format   string
		dir      string
		hint     string
		title    string
		graphviz bool
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "export [dataset]",
		Short: "Export a snapshot of a view (png, svg or dot)",
		Long: `Export renders the view at 1920x1080 and writes it to a new file named
<hint>-<id>.<format> in the export directory. Every run creates a new file.

An export failure is reported as a warning; the command still succeeds.`,
		Example: `  stakemap export projects.json
  stakemap export projects.json --select module:billing --direct-only
  stakemap export --format svg --graphviz --dir snapshots`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg()
			st, err := vf.state(cmd, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Export.Format
			}
			if !cmd.Flags().Changed("dir") {
				dir = cfg.Export.Dir
			}

			runner, err := c.newRunner(ctx, datasetArg(args), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinner(ctx, os.Stderr, "Rendering snapshot...")
			spinner.Start()
			res, err := runner.Execute(ctx, pipeline.Options{
				State:     st,
				Format:    render.Format(format),
				Graphviz:  graphviz,
				Title:     title,
				Export:    true,
				ExportDir: dir,
				Hint:      hint,
				Refresh:   refresh,
			})
			switch {
			case errors.Is(err, errors.ErrCodeExportFailed) || errors.Is(err, errors.ErrCodeSurfaceDetached):
				spinner.Stop()
				printWarning("Export failed: %s", errors.UserMessage(err))
				return nil
			case err != nil && spinner.Cancelled():
				spinner.Stop()
				return err
			case err != nil:
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Exported %s snapshot", res.Format))
			printStats(res.View.Stats.TotalNodes, res.View.Stats.TotalEdges, res.CacheInfo.RenderHit)
			printFile(res.Export.Path)
			return nil
		},
	}

	vf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatPNG), "output format: png, svg or dot")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory for exported files")
	cmd.Flags().StringVar(&hint, "hint", pipeline.DefaultHint, "file name stem")
	cmd.Flags().StringVar(&title, "title", pipeline.DefaultTitle, "snapshot heading")
	cmd.Flags().BoolVar(&graphviz, "graphviz", false, "draw svg with Graphviz")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached datasets and snapshots")
	registerFormatCompletion(cmd)
	return cmd
}
