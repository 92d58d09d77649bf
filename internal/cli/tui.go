package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowkit/flowkit/pkg/fbp"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive graph browsing
// =============================================================================

// NodeListModel is the bubbletea model for browsing a graph's processes.
// The selected node's connections and initializers are shown inline.
type NodeListModel struct {
	Graph  *fbp.Graph
	Nodes  []fbp.Node
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a node list model over the given graph.
func NewNodeListModel(g *fbp.Graph) NodeListModel {
	return NodeListModel{
		Graph:  g,
		Nodes:  g.Nodes(),
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		if msg.Height > 6 {
			m.Height = msg.Height - 6
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Graph.Name))
	b.WriteString("\n\n")

	if len(m.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("(no processes)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Nodes))
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		line := fmt.Sprintf("%s (%s)", n.ID, n.Component)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range m.connectionLines(m.Nodes[m.Cursor].ID) {
		b.WriteString(listDimStyle.Render("  " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate · q quit"))
	b.WriteString("\n")
	return b.String()
}

// connectionLines describes every edge and initializer touching the node.
func (m NodeListModel) connectionLines(id string) []string {
	var lines []string
	for _, e := range m.Graph.Edges() {
		if e.From.Node == id || e.To.Node == id {
			lines = append(lines, fmt.Sprintf("%s.%s %s %s.%s",
				e.From.Node, e.From.Port, iconArrow, e.To.Node, e.To.Port))
		}
	}
	for _, in := range m.Graph.Initializers() {
		if in.To.Node == id {
			lines = append(lines, fmt.Sprintf("%v %s %s.%s",
				in.Data, iconArrow, in.To.Node, in.To.Port))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "(no connections)")
	}
	return lines
}

// browseGraph runs the interactive node browser.
func browseGraph(g *fbp.Graph) error {
	_, err := tea.NewProgram(NewNodeListModel(g)).Run()
	return err
}
