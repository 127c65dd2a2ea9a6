package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lifeline/pkg/timeline"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	detailLineStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// EventListModel - Interactive scene browser
// =============================================================================

// EventListModel is the bubbletea model for browsing the placed events of a
// scene. Enter toggles a detail view of the selected event.
type EventListModel struct {
	Scene    timeline.Scene
	Cursor   int
	Height   int
	Offset   int
	Detailed bool
}

// NewEventListModel creates a new event list model.
func NewEventListModel(s timeline.Scene) EventListModel {
	return EventListModel{Scene: s, Height: 15}
}

func (m EventListModel) Init() tea.Cmd {
	return nil
}

func (m EventListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detailed {
				m.Detailed = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.Scene.Len()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Scene.Len() > 0 {
				m.Detailed = !m.Detailed
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m EventListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Timeline Events"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if m.Scene.Len() == 0 {
		b.WriteString(listDimStyle.Render("  no events"))
		b.WriteString("\n")
		return b.String()
	}

	if m.Detailed {
		b.WriteString(m.detailView(m.Scene.Nodes[m.Cursor]))
	} else {
		b.WriteString(m.tableView())
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Scene.Len())))
	if n := len(m.Scene.Warnings); n > 0 {
		b.WriteString("  ")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%d skipped", n)))
	}

	return b.String()
}

func (m EventListModel) tableView() string {
	end := min(m.Offset+m.Height, m.Scene.Len())

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Scene.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			n.Badge.Label,
			n.Date.Text,
			formatSlot(n.Slot),
			truncate(n.Event.Description, 40),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Date", "Slot", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	return t.Render()
}

func (m EventListModel) detailView(n timeline.Node) string {
	var b strings.Builder
	kv := func(k, v string) {
		b.WriteString(detailKeyStyle.Render(k) + " " + detailLineStyle.Render(v) + "\n")
	}
	kv("event", n.Badge.Label)
	kv("date", n.Date.Text)
	kv("slot", formatSlot(n.Slot))
	kv("position", fmt.Sprintf("(%g, %g)", n.Position.X, n.Position.Y))
	kv("box", fmt.Sprintf("%g x %g", n.Box.Width, n.Box.Height))
	b.WriteString("\n")
	for _, line := range n.Lines {
		b.WriteString("  " + detailLineStyle.Render(line) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// =============================================================================
// Helpers
// =============================================================================

func formatSlot(s timeline.Slot) string {
	if s.Row < 0 {
		return fmt.Sprintf("top,%d", s.Col)
	}
	return fmt.Sprintf("%d,%d", s.Row, s.Col)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
