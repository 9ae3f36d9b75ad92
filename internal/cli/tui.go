package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/project"
	"github.com/matzehuels/stakemap/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exportFunc renders and writes a snapshot of the current view.
type exportFunc func(v explore.View) (render.Result, error)

// exportDoneMsg reports the outcome of an export started with "e".
type exportDoneMsg struct {
	result render.Result
	err    error
}

// =============================================================================
// ExploreModel - Interactive graph explorer
// =============================================================================

// ExploreModel is the bubbletea model behind "stakemap explore". Every key
// that changes the view state triggers a full rebuild.
type ExploreModel struct {
	Dataset project.Dataset
	State   explore.ViewState
	Current explore.View

	// Cursor indexes the visible nodes.
	Cursor int
	Offset int
	Height int

	// Searching is true while the "/" prompt is open; Query is its buffer.
	Searching bool
	Query     string

	Status string

	stakeholders []string
	export       exportFunc
}

var _ tea.Model = ExploreModel{}

// NewExploreModel rebuilds the initial view. export may be nil to disable
// the "e" key.
func NewExploreModel(ds project.Dataset, st explore.ViewState, export exportFunc) ExploreModel {
	m := ExploreModel{
		Dataset:      ds,
		State:        st,
		Height:       15,
		stakeholders: ds.Stakeholders(),
		export:       export,
	}
	m.rebuild()
	if m.Current.SelectionDropped != "" {
		m.Status = fmt.Sprintf("%s is not in this view", m.Current.SelectionDropped)
	}
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg), nil
		}
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
		m.scroll()
	case exportDoneMsg:
		if msg.err != nil {
			m.Status = "export failed: " + errors.UserMessage(msg.err)
		} else {
			m.Status = "exported " + msg.result.Path
		}
	}
	return m, nil
}

func (m ExploreModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.scroll()
	case "down", "j":
		if m.Cursor < len(m.Current.VisibleNodes())-1 {
			m.Cursor++
		}
		m.scroll()
	case "enter", " ":
		if n, ok := m.current(); ok {
			m.State = m.State.Select(n.ID)
			m.rebuild()
		}
	case "esc":
		m.State = m.State.ClearSelection()
		m.rebuild()
	case "/":
		m.Searching = true
		m.Query = m.State.Search
	case "+", "=":
		m.State = m.State.WithThreshold(m.State.Threshold + 1)
		m.rebuild()
	case "-", "_":
		m.State = m.State.WithThreshold(m.State.Threshold - 1)
		m.rebuild()
	case "s":
		m.State = m.State.CycleStakeholder(m.stakeholders)
		m.rebuild()
	case "d":
		m.State.DirectOnly = !m.State.DirectOnly
		m.rebuild()
	case "m":
		m.State = m.State.SwitchView(m.State.Mode.Toggle(), m.Dataset)
		m.rebuild()
	case "l":
		m.State.Layout = m.State.Layout.Next()
		m.rebuild()
	case "e":
		if m.export == nil {
			m.Status = "export is not available"
			return m, nil
		}
		m.Status = "exporting..."
		export, v := m.export, m.Current
		return m, func() tea.Msg {
			res, err := export(v)
			return exportDoneMsg{result: res, err: err}
		}
	}
	return m, nil
}

// updateSearch edits the search prompt. Enter applies the query, esc
// abandons it.
func (m ExploreModel) updateSearch(msg tea.KeyMsg) ExploreModel {
	switch msg.Type {
	case tea.KeyEnter:
		m.Searching = false
		if err := errors.ValidateSearch(m.Query); err != nil {
			m.Status = errors.UserMessage(err)
			return m
		}
		m.State.Search = strings.TrimSpace(m.Query)
		m.rebuild()
	case tea.KeyEsc:
		m.Searching = false
	case tea.KeyBackspace:
		if r := []rune(m.Query); len(r) > 0 {
			m.Query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Query += " "
	case tea.KeyRunes:
		m.Query += string(msg.Runes)
	}
	return m
}

// rebuild recomputes the view and keeps the cursor on a visible node.
func (m *ExploreModel) rebuild() {
	m.Current = explore.Rebuild(m.Dataset, m.State)
	m.State = m.Current.State
	n := len(m.Current.VisibleNodes())
	if m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	m.scroll()
}

func (m *ExploreModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ExploreModel) current() (explore.Node, bool) {
	nodes := m.Current.VisibleNodes()
	if m.Cursor < 0 || m.Cursor >= len(nodes) {
		return explore.Node{}, false
	}
	return nodes[m.Cursor], true
}

// =============================================================================
// Rendering
// =============================================================================

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("stakemap"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.stateLine()))
	b.WriteString("\n\n")

	nodes := m.Current.VisibleNodes()
	if len(nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.nodeTable(nodes))
		b.WriteString("\n")
	}

	if detail := m.detail(); detail != "" {
		b.WriteString("\n")
		b.WriteString(detail)
	}

	b.WriteString("\n")
	s := m.Current.Stats
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d nodes · %d edges · %d highlighted", s.TotalNodes, s.TotalEdges, s.Highlighted)))
	b.WriteString("\n")

	switch {
	case m.Searching:
		b.WriteString(StyleHighlight.Render("/") + m.Query + "█")
	case m.Status != "":
		b.WriteString(StyleWarning.Render(m.Status))
	default:
		b.WriteString(listDimStyle.Render("⏎ select  esc clear  / search  +/- threshold  s stakeholder  d direct  m mode  l layout  e export  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m ExploreModel) stateLine() string {
	parts := []string{
		string(m.State.Mode) + " view",
		string(m.State.Layout) + " layout",
	}
	if m.State.Mode == explore.ViewOverlap {
		parts = append(parts, fmt.Sprintf("threshold %d", m.State.Threshold))
		if m.State.Stakeholder != "" {
			parts = append(parts, "stakeholder "+m.State.Stakeholder)
		}
	}
	if m.State.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.State.Search))
	}
	if m.State.DirectOnly {
		parts = append(parts, "direct only")
	}
	return strings.Join(parts, " · ")
}

func (m ExploreModel) nodeTable(nodes []explore.Node) string {
	end := min(m.Offset+m.Height, len(nodes))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if n.Selected {
			mark = "●"
		}
		rows = append(rows, []string{cursor, mark, n.Label, n.Kind.String(), nodeDetail(n)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Name", "Kind", "Details").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(nodes) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !nodes[idx].Highlighted:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})
	return t.Render() + "\n" + listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes)))
}

func nodeDetail(n explore.Node) string {
	if n.Kind == graph.KindFeature {
		return "in " + n.ModuleID
	}
	return moduleSummary(n.Priority, n.Status)
}

// detail renders the selected node's neighbor panel.
func (m ExploreModel) detail() string {
	if m.State.Selected == "" {
		return ""
	}
	n, ok := m.Current.Node(m.State.Selected)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(nodeLabel(n))
	if n.Kind == graph.KindModule && len(n.Stakeholders) > 0 {
		b.WriteString(listDimStyle.Render("  " + strings.Join(n.Stakeholders, ", ")))
	}
	b.WriteString("\n")
	neighbors := m.Current.Neighbors(n.ID)
	if len(neighbors) == 0 {
		b.WriteString(listDimStyle.Render("  no direct neighbors"))
		b.WriteString("\n")
	}
	for _, nb := range neighbors {
		b.WriteString("  " + StyleDim.Render(iconArrow) + " " + nb.Label + " " + listDimStyle.Render(neighborNote(nb)))
		b.WriteString("\n")
	}
	return b.String()
}
