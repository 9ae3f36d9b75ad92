package explore

import (
	"strings"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/layout"
	"github.com/matzehuels/stakemap/pkg/project"
)

// ViewMode selects which graph semantics are displayed.
type ViewMode string

const (
	// ViewOverlap links modules that share stakeholders.
	ViewOverlap ViewMode = "overlap"
	// ViewExplicit shows stored connections between modules and features.
	ViewExplicit ViewMode = "explicit"
)

// ParseViewMode validates a view mode name. The empty string means overlap.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ViewOverlap, nil
	case ViewOverlap, ViewExplicit:
		return m, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidViewMode, "unknown view mode %q (want overlap or explicit)", s)
	}
}

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewExplicit {
		return ViewOverlap
	}
	return ViewExplicit
}

// ViewState is the complete, serializable input to [Rebuild] besides the
// dataset itself. The zero value is usable and equals [DefaultState] after
// [ViewState.Normalize].
type ViewState struct {
	Mode        ViewMode     `json:"mode" toml:"mode" bson:"mode"`
	Layout      layout.Mode  `json:"layout" toml:"layout" bson:"layout"`
	Selected    graph.NodeID `json:"selected,omitempty" toml:"selected,omitempty" bson:"selected,omitempty"`
	Search      string       `json:"search,omitempty" toml:"search,omitempty" bson:"search,omitempty"`
	Threshold   int          `json:"threshold" toml:"threshold" bson:"threshold"`
	Stakeholder string       `json:"stakeholder,omitempty" toml:"stakeholder,omitempty" bson:"stakeholder,omitempty"`
	DirectOnly  bool         `json:"direct_only" toml:"direct_only" bson:"direct_only"`
}

// DefaultState returns the state a fresh session starts from.
func DefaultState() ViewState {
	return ViewState{
		Mode:      ViewOverlap,
		Layout:    layout.Circular,
		Threshold: 1,
	}
}

// Normalize validates user-supplied fields and fills defaults. Hosts call it
// on state decoded from flags, config files or query strings; [Rebuild]
// itself tolerates unnormalized state.
func (s ViewState) Normalize() (ViewState, error) {
	mode, err := ParseViewMode(string(s.Mode))
	if err != nil {
		return s, err
	}
	lay, err := layout.ParseMode(string(s.Layout))
	if err != nil {
		return s, err
	}
	if err := errors.ValidateSearch(s.Search); err != nil {
		return s, err
	}
	if s.Threshold < 0 {
		return s, errors.New(errors.ErrCodeInvalidInput, "threshold must not be negative, got %d", s.Threshold)
	}
	if !s.Selected.IsZero() {
		if _, _, ok := s.Selected.Parse(); !ok {
			return s, errors.New(errors.ErrCodeInvalidInput, "malformed node id %q", s.Selected)
		}
	}

	s.Mode = mode
	s.Layout = lay
	s.Search = strings.TrimSpace(s.Search)
	s.Stakeholder = strings.TrimSpace(s.Stakeholder)
	s.Threshold = max(s.Threshold, 1)
	return s, nil
}

// Select handles a click on a node: clicking the selected node clears the
// selection, clicking any other node selects it.
func (s ViewState) Select(id graph.NodeID) ViewState {
	if s.Selected == id {
		s.Selected = ""
	} else {
		s.Selected = id
	}
	return s
}

// ClearSelection handles a click on empty canvas.
func (s ViewState) ClearSelection() ViewState {
	s.Selected = ""
	return s
}

// SwitchView changes the view mode. The selection survives only if the
// selected node exists in the new view; a feature selected in the explicit
// view is cleared when switching to the module-only overlap view.
func (s ViewState) SwitchView(mode ViewMode, ds project.Dataset) ViewState {
	s.Mode = mode
	if !s.Selected.IsZero() && !NodeIDs(ds, mode)[s.Selected] {
		s.Selected = ""
	}
	return s
}

// WithThreshold sets the minimum shared count, clamped to at least 1.
func (s ViewState) WithThreshold(n int) ViewState {
	s.Threshold = max(n, 1)
	return s
}

// CycleStakeholder advances the single-stakeholder filter through names,
// returning to "all" (empty) after the last one.
func (s ViewState) CycleStakeholder(names []string) ViewState {
	if len(names) == 0 {
		s.Stakeholder = ""
		return s
	}
	if s.Stakeholder == "" {
		s.Stakeholder = names[0]
		return s
	}
	for i, n := range names {
		if n == s.Stakeholder {
			if i+1 < len(names) {
				s.Stakeholder = names[i+1]
			} else {
				s.Stakeholder = ""
			}
			return s
		}
	}
	s.Stakeholder = ""
	return s
}

// NodeIDs returns the node set of a view mode. The overlap view holds every
// module; the explicit view adds features whose owner exists.
func NodeIDs(ds project.Dataset, mode ViewMode) map[graph.NodeID]bool {
	ids := make(map[graph.NodeID]bool, len(ds.Modules)+len(ds.Features))
	for _, m := range ds.Modules {
		ids[graph.ModuleNodeID(m.ID)] = true
	}
	if mode != ViewExplicit {
		return ids
	}
	for id := range ds.FeatureIDs() {
		ids[graph.FeatureNodeID(id)] = true
	}
	return ids
}
