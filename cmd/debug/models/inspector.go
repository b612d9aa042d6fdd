package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/dungeon/cmd/debug/components"
	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/world"
)

// InspectorModel shows one loaded chunk at a time with its edge openings
// and spawn markers.
type InspectorModel struct {
	session *world.Session
	loaded  []chunk.Coord
	cursor  int
	width   int
	height  int
}

func NewInspectorModel(session *world.Session) InspectorModel {
	return InspectorModel{session: session}
}

// Init reloads the chunk list and selects the viewer's chunk.
func (m *InspectorModel) Init() tea.Cmd {
	m.refresh()
	at := m.session.Viewer().Chunk
	for i, c := range m.loaded {
		if c == at {
			m.cursor = i
			break
		}
	}
	return nil
}

func (m *InspectorModel) refresh() {
	m.loaded = m.session.Loaded()
	if m.cursor >= len(m.loaded) {
		m.cursor = 0
	}
}

func (m *InspectorModel) SetSession(s *world.Session) {
	m.session = s
	m.cursor = 0
	m.loaded = nil
}

func (m InspectorModel) Update(msg tea.Msg) (InspectorModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.loaded) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.loaded)) % len(m.loaded)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.loaded)
	case "r":
		m.refresh()
	}
	return m, nil
}

// Selected returns the chunk under the cursor.
func (m InspectorModel) Selected() (chunk.Coord, bool) {
	if len(m.loaded) == 0 {
		return chunk.Coord{}, false
	}
	return m.loaded[m.cursor], true
}

func (m InspectorModel) renderList() string {
	viewer := m.session.Viewer().Chunk
	lines := []string{components.TableHeaderStyle.Render("Loaded chunks")}
	for i, c := range m.loaded {
		label := c.String()
		if c == viewer {
			label += " @"
		}
		style := components.TableCellStyle
		if i == m.cursor {
			style = components.SelectedMenuItemStyle
		}
		lines = append(lines, style.Render(label))
	}
	return strings.Join(lines, "\n")
}

func renderChunk(c *chunk.Chunk) string {
	rows := make([]string, 0, c.Size())
	for _, row := range c.Tiles() {
		var b strings.Builder
		for _, t := range row {
			b.WriteString(lipgloss.NewStyle().Foreground(components.TileColor(t)).Render(components.TileSymbol(t)))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// describeOpenings collapses consecutive boundary positions into ranges.
func describeOpenings(positions []int) string {
	if len(positions) == 0 {
		return "closed"
	}
	var parts []string
	start, prev := positions[0], positions[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, p := range positions[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		flush()
		start, prev = p, p
	}
	flush()
	return strings.Join(parts, ",")
}

func (m InspectorModel) renderDetails(coord chunk.Coord, c *chunk.Chunk) string {
	lines := []string{
		components.SubtitleStyle.Render(fmt.Sprintf("Chunk %s", coord)),
		"",
	}
	for _, e := range chunk.Edges {
		lines = append(lines, fmt.Sprintf("%-6s %s", e, describeOpenings(c.EdgeOpenings(e))))
	}

	lines = append(lines, "", components.SubtitleStyle.Render("Spawns"))
	count := 0
	for _, mk := range m.session.Spawns() {
		if mk.Chunk != coord {
			continue
		}
		count++
		lines = append(lines, fmt.Sprintf("%s %-10s (%d, %d)", components.SpawnSymbol(mk.Kind), mk.Kind, mk.TileX, mk.TileY))
	}
	if count == 0 {
		lines = append(lines, "none")
	}
	return components.InfoPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m InspectorModel) View() string {
	var s strings.Builder
	s.WriteString(components.SubtitleStyle.Render("Chunk Inspector") + "\n")

	coord, ok := m.Selected()
	if !ok {
		s.WriteString(components.BorderStyle.Render("No chunks loaded") + "\n")
	} else if c, loaded := m.session.Chunk(coord); !loaded {
		s.WriteString(components.ErrorStyle.Render(fmt.Sprintf("Chunk %s was evicted, press r to refresh", coord)) + "\n")
	} else {
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			components.BorderStyle.Render(m.renderList()),
			" ",
			components.FocusedBorderStyle.Render(renderChunk(c)),
			" ",
			m.renderDetails(coord, c),
		) + "\n")
	}

	s.WriteString(components.StatusBarStyle.Width(m.width).Render("↑/↓ select chunk • r refresh • q back"))
	return s.String()
}

func (m *InspectorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
