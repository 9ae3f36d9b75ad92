package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/config"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/layout"
)

// viewFlags are the view state flags shared by build, export, explore and
// serve. Flags left unset keep the [view] config values.
type viewFlags struct {
	mode        string
	layout      string
	selected    string
	search      string
	threshold   int
	stakeholder string
	directOnly  bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.mode, "mode", "m", "", "view mode: overlap or explicit")
	fl.StringVarP(&f.layout, "layout", "l", "", "layout: circular, status or priority")
	fl.StringVar(&f.selected, "select", "", "node to select, e.g. module:auth")
	fl.StringVarP(&f.search, "search", "s", "", "highlight nodes whose name or code contains this text")
	fl.IntVarP(&f.threshold, "threshold", "t", 0, "minimum shared stakeholders per overlap edge")
	fl.StringVar(&f.stakeholder, "stakeholder", "", "only count this stakeholder")
	fl.BoolVarP(&f.directOnly, "direct-only", "d", false, "hide nodes outside the highlight set")
	registerViewCompletions(cmd)
}

// state overlays changed flags on the config's view state.
func (f *viewFlags) state(cmd *cobra.Command, cfg *config.Config) (explore.ViewState, error) {
	st, err := cfg.ViewState()
	if err != nil {
		return st, err
	}
	fl := cmd.Flags()
	if fl.Changed("mode") {
		st.Mode = explore.ViewMode(f.mode)
	}
	if fl.Changed("layout") {
		st.Layout = layout.Mode(f.layout)
	}
	if fl.Changed("select") {
		st.Selected = graph.NodeID(f.selected)
	}
	if fl.Changed("search") {
		st.Search = f.search
	}
	if fl.Changed("threshold") {
		st.Threshold = f.threshold
	}
	if fl.Changed("stakeholder") {
		st.Stakeholder = f.stakeholder
	}
	if fl.Changed("direct-only") {
		st.DirectOnly = f.directOnly
	}
	return st.Normalize()
}
