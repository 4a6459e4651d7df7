package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// layoutChoice is one selectable layout strategy.
type layoutChoice struct {
	name        string
	description string
}

var layoutChoices = []layoutChoice{
	{diagram.LayoutFlow, "zone bands following the traffic direction"},
	{diagram.LayoutLayered, "seven fixed architectural layers"},
	{diagram.LayoutZones, "fixed security-zone columns"},
	{diagram.LayoutMicroservices, "radial rings of services and shared infrastructure"},
}

// LayoutListModel is the bubbletea model for interactive layout
// selection.
type LayoutListModel struct {
	Choices  []layoutChoice
	Cursor   int
	Selected string
}

// NewLayoutListModel creates a layout list model with the cursor on the
// current strategy.
func NewLayoutListModel(current string) LayoutListModel {
	m := LayoutListModel{Choices: layoutChoices}
	for i, c := range m.Choices {
		if c.name == current {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m LayoutListModel) Init() tea.Cmd {
	return nil
}

func (m LayoutListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Choices[m.Cursor].name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LayoutListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Strategy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(c.name))
		b.WriteString("  " + listDimStyle.Render(c.description))
		b.WriteString("\n")
	}

	return b.String()
}

// pickLayout runs the interactive layout picker. The second return is
// false when the user quit without selecting.
func pickLayout(current string) (string, bool, error) {
	model, err := tea.NewProgram(NewLayoutListModel(current)).Run()
	if err != nil {
		return "", false, fmt.Errorf("run picker: %w", err)
	}
	final, ok := model.(LayoutListModel)
	if !ok || final.Selected == "" {
		return "", false, nil
	}
	return final.Selected, true, nil
}
