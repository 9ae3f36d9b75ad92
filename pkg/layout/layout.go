package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/project"
)

// Geometry constants, in scene units.
const (
	MinRadius       = 300.0
	RadiusPerModule = 45.0
	GroupSpacing    = 450.0
	ColumnWidth     = 140.0
	RowHeight       = 120.0
	Columns         = 3
	SatelliteRadius = 120.0

	// ExplicitSpread scales module centers in the explicit view so that
	// satellite rings do not run into neighboring modules.
	ExplicitSpread = 1.6
)

// Center is the fixed origin of the circular layout.
var Center = Position{X: 600, Y: 400}

// Position is a point in scene coordinates. Y grows downward.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Position) Sub(q Position) Position { return Position{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p multiplied by f.
func (p Position) Scale(f float64) Position { return Position{X: p.X * f, Y: p.Y * f} }

// Mode selects how module nodes are arranged.
type Mode string

const (
	Circular   Mode = "circular"
	ByStatus   Mode = "status"
	ByPriority Mode = "priority"
)

// Modes lists the supported layout modes in the order hosts cycle them.
var Modes = []Mode{Circular, ByStatus, ByPriority}

// ParseMode validates a layout mode name. The empty string means [Circular].
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Circular, nil
	case Circular, ByStatus, ByPriority:
		return m, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q (want circular, status or priority)", s)
	}
}

// Next returns the mode following m in [Modes], wrapping around.
func (m Mode) Next() Mode {
	for i, x := range Modes {
		if x == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Circular
}

// Options tunes module placement.
type Options struct {
	// Spread scales module centers away from the layout origin. Values of 0
	// or 1 leave positions unchanged; the explicit view uses [ExplicitSpread].
	Spread float64
}

// Modules positions every module by mode. Duplicate IDs keep the first
// occurrence's slot. Unknown modes fall back to [Circular].
func Modules(modules []project.Module, mode Mode, opts Options) map[string]Position {
	ids := make([]string, 0, len(modules))
	seen := make(map[string]bool, len(modules))
	unique := make([]project.Module, 0, len(modules))
	for _, m := range modules {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		ids = append(ids, m.ID)
		unique = append(unique, m)
	}

	var pts []Position
	origin := Position{}
	switch mode {
	case ByStatus:
		groups := make([]int, len(unique))
		for i, m := range unique {
			groups[i] = StatusGroup(m.Status)
		}
		pts = Clustered(groups)
	case ByPriority:
		groups := make([]int, len(unique))
		for i, m := range unique {
			groups[i] = PriorityGroup(m.Priority)
		}
		pts = Clustered(groups)
	default:
		pts = CircularPositions(len(unique))
		origin = Center
	}

	out := make(map[string]Position, len(ids))
	for i, id := range ids {
		p := pts[i]
		if opts.Spread != 0 && opts.Spread != 1 {
			p = origin.Add(p.Sub(origin).Scale(opts.Spread))
		}
		out[id] = p
	}
	return out
}

// Radius returns the circle radius used for n modules.
func Radius(n int) float64 {
	return math.Max(MinRadius, float64(n)*RadiusPerModule)
}

// CircularPositions places n points on a circle around [Center]. The i-th
// point sits at angle 2πi/n - π/2.
func CircularPositions(n int) []Position {
	pts := make([]Position, n)
	r := Radius(n)
	for i := range pts {
		theta := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		pts[i] = Position{
			X: Center.X + r*math.Cos(theta),
			Y: Center.Y + r*math.Sin(theta),
		}
	}
	return pts
}

// Clustered lays out items whose group indices are given in input order.
// Within a group, items fill rows of [Columns] left to right.
func Clustered(groups []int) []Position {
	pts := make([]Position, len(groups))
	counts := make(map[int]int)
	for i, g := range groups {
		k := counts[g]
		counts[g]++
		pts[i] = Position{
			X: float64(g)*GroupSpacing + float64(k%Columns)*ColumnWidth,
			Y: float64(k/Columns) * RowHeight,
		}
	}
	return pts
}

// StatusGroup returns the cluster index of a status. Unknown values fall
// into the last group.
func StatusGroup(s project.Status) int {
	for i, x := range project.Statuses {
		if x == s {
			return i
		}
	}
	return len(project.Statuses) - 1
}

// PriorityGroup returns the cluster index of a priority. Unknown values fall
// into the last group.
func PriorityGroup(p project.Priority) int {
	for i, x := range project.Priorities {
		if x == p {
			return i
		}
	}
	return len(project.Priorities) - 1
}

// Satellites rings features around their module's center. The k-th feature
// sits at angle 2πk/count on a circle of [SatelliteRadius].
func Satellites(center Position, featureIDs []string) map[string]Position {
	out := make(map[string]Position, len(featureIDs))
	n := float64(max(len(featureIDs), 1))
	for k, id := range featureIDs {
		theta := 2 * math.Pi * float64(k) / n
		out[id] = Position{
			X: center.X + SatelliteRadius*math.Cos(theta),
			Y: center.Y + SatelliteRadius*math.Sin(theta),
		}
	}
	return out
}
