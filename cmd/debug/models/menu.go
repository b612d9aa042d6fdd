package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/dungeon/cmd/debug/components"
)

// MenuModel handles the main menu view
type MenuModel struct {
	choices []MenuChoice
	cursor  int
	width   int
	height  int
}

// MenuChoice represents a menu option
type MenuChoice struct {
	Title       string
	Description string
	View        ViewType
}

func NewMenuModel() MenuModel {
	return MenuModel{
		choices: []MenuChoice{
			{Title: "Explorer", Description: "Walk the dungeon around the viewer", View: ExplorerView},
			{Title: "Chunk Inspector", Description: "Seams and spawns of loaded chunks", View: InspectorView},
			{Title: "World Overview", Description: "Seed, window stats and chunk journal", View: OverviewView},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.choices) - 1
		}

	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}

	case "enter", "space", " ":
		return m, m.selectCmd()

	case "1", "2", "3":
		m.cursor = int(key.String()[0] - '1')
		return m, m.selectCmd()
	}

	return m, nil
}

func (m MenuModel) selectCmd() tea.Cmd {
	selected := m.choices[m.cursor]
	return func() tea.Msg {
		return NewSwitchViewMsg(selected.View)
	}
}

func (m MenuModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Dungeon Debug Tool") + "\n\n")

	menuStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.PrimaryColor).
		Padding(1, 2).
		Width(64)

	items := make([]string, 0, len(m.choices))
	for i, choice := range m.choices {
		style := components.MenuItemStyle
		if i == m.cursor {
			style = components.SelectedMenuItemStyle
		}
		items = append(items, style.Render(fmt.Sprintf("%-3s %-18s %s", fmt.Sprintf("%d.", i+1), choice.Title, choice.Description)))
	}
	s.WriteString(menuStyle.Render(strings.Join(items, "\n")) + "\n\n")

	s.WriteString(components.HelpStyle.Render("Use ↑/↓ or j/k to navigate • Enter or number to select • ? for help • q to quit"))

	content := s.String()
	if m.width > 0 {
		if w := lipgloss.Width(content); w < m.width {
			content = lipgloss.NewStyle().PaddingLeft((m.width - w) / 2).Render(content)
		}
	}
	return content
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
