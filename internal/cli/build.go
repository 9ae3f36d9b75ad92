package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/explore"
)

// buildCommand creates the build command: load, rebuild and summarize.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		vf      viewFlags
		asJSON  bool
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "build [dataset]",
		Short: "Build a view and print its statistics",
		Long: `Build loads the dataset, rebuilds the view for the given state and prints
its statistics. With --json the full view (nodes, edges, stats) is written
instead.`,
		Example: `  stakemap build projects.json
  stakemap build projects.toml --mode explicit --select module:auth
  stakemap build --json -o view.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := vf.state(cmd, c.cfg())
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, datasetArg(args), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			ds, hit, err := runner.LoadWithCacheInfo(ctx, refresh)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d modules from %s", len(ds.Modules), runner.Source.Describe()))

			v := runner.Rebuild(ctx, ds, st)
			if v.SelectionDropped != "" {
				printWarning("%s is not in the %s view; selection cleared", v.SelectionDropped, v.State.Mode)
			}

			if asJSON || output != "" {
				return writeView(v, output)
			}
			printView(v, hit)
			printNewline()
			printNextStep("Explore interactively", "stakemap explore "+datasetArg(args))
			return nil
		},
	}

	vf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the view as JSON to stdout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the view JSON to a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the dataset cache")
	return cmd
}

func writeView(v explore.View, path string) error {
	if path == "" {
		return explore.WriteView(v, stdout)
	}
	if err := explore.WriteViewFile(v, path); err != nil {
		return err
	}
	printSuccess("Wrote view")
	printFile(path)
	return nil
}

// printView prints the stats summary and, with a selection, its neighbors.
func printView(v explore.View, cached bool) {
	printSuccess("Built %s view", v.State.Mode)
	printStats(v.Stats.TotalNodes, v.Stats.TotalEdges, cached)
	printNewline()

	s := v.Stats
	for _, kind := range sortedKeys(s.NodesByKind) {
		printKeyValue(kind+"s", fmt.Sprint(s.NodesByKind[kind]))
	}
	for _, cat := range sortedKeys(s.EdgesByCategory) {
		printKeyValue(cat, fmt.Sprint(s.EdgesByCategory[cat]))
	}
	printKeyValue("highlighted", fmt.Sprint(s.Highlighted))
	if s.HiddenNodes > 0 || s.HiddenEdges > 0 {
		printKeyValue("hidden", fmt.Sprintf("%d nodes, %d edges", s.HiddenNodes, s.HiddenEdges))
	}

	if v.State.Selected == "" {
		return
	}
	n, _ := v.Node(v.State.Selected)
	printNewline()
	printLine(nodeLabel(n) + " " + StyleDim.Render(string(n.ID)))
	neighbors := v.Neighbors(n.ID)
	if len(neighbors) == 0 {
		printDetail("no direct neighbors")
	}
	for _, nb := range neighbors {
		printDetail("%s %s", nb.Label, neighborNote(nb))
	}
}

func neighborNote(nb explore.Neighbor) string {
	if len(nb.Shared) > 0 {
		return "(" + strings.Join(nb.Shared, ", ") + ")"
	}
	if nb.Outgoing {
		return "(outgoing " + nb.ConnectionID + ")"
	}
	return "(incoming " + nb.ConnectionID + ")"
}
