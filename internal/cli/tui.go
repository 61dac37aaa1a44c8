package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chartnote/pkg/render/sink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// AnnotationListModel - Interactive annotation browser
// =============================================================================

// AnnotationListModel is the bubbletea model of the inspect command. It lists
// the placements of a report and shows the details of the selected one.
type AnnotationListModel struct {
	Report *sink.Report
	Cursor int
	Height int
	Offset int
	// OnlySkipped hides annotations that were drawn.
	OnlySkipped bool
}

// NewAnnotationListModel creates a new annotation list model.
func NewAnnotationListModel(r *sink.Report) AnnotationListModel {
	return AnnotationListModel{Report: r, Height: 12}
}

// visible returns the indexes of the listed placements.
func (m AnnotationListModel) visible() []int {
	var idx []int
	for i, a := range m.Report.Annotations {
		if !m.OnlySkipped || !a.Drawn {
			idx = append(idx, i)
		}
	}
	return idx
}

// Selected returns the placement under the cursor, or nil.
func (m AnnotationListModel) Selected() *sink.Placement {
	idx := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(idx) {
		return nil
	}
	return &m.Report.Annotations[idx[m.Cursor]]
}

func (m AnnotationListModel) Init() tea.Cmd {
	return nil
}

func (m AnnotationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.visible())
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.OnlySkipped = !m.OnlySkipped
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-16, 3)
	}
	return m, nil
}

func (m AnnotationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Annotations"))
	if m.Report.Source != "" {
		b.WriteString(" " + listDimStyle.Render(m.Report.Source))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s skipped only  q quit"))
	b.WriteString("\n\n")

	idx := m.visible()
	if len(idx) == 0 {
		b.WriteString(listDimStyle.Render("  nothing to show"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(idx))
	for row := m.Offset; row < end; row++ {
		a := m.Report.Annotations[idx[row]]
		cursor := "  "
		if row == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %-20s %-6s (%s, %s)", cursor, drawnMark(a.Drawn), placementName(a, idx[row]), a.Type, coord(a.X), coord(a.Y))

		switch {
		case row == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !a.Drawn:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if sel := m.Selected(); sel != nil {
		b.WriteString("\n")
		b.WriteString(detailBoxStyle.Render(placementDetail(*sel)))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(idx))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// placementDetail formats every field of a placement, one per line.
func placementDetail(a sink.Placement) string {
	var lines []string
	add := func(k, v string) {
		lines = append(lines, styleLabel.Render(k)+" "+StyleValue.Render(v))
	}

	add("anchor", coord(a.X)+", "+coord(a.Y))
	add("pane", dash(a.Pane))
	if a.Plaque != nil {
		add("plaque", plaqueBox(a))
	} else {
		add("plaque", "not drawn")
	}
	if a.Description != "" {
		add("description", a.Description)
	}
	for _, k := range slices.Sorted(maps.Keys(a.Data)) {
		add("data."+k, fmt.Sprint(a.Data[k]))
	}
	return strings.Join(lines, "\n")
}
