package models

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/dungeon/cmd/debug/components"
	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/spawn"
	"github.com/VoidMesh/dungeon/internal/world"
)

const (
	defaultMapWidth  = 64
	defaultMapHeight = 28
	infoPanelWidth   = 38
	chromeHeight     = 6
)

// ExplorerModel draws the tiles around the viewer and moves it.
type ExplorerModel struct {
	worlds  *world.Manager
	session *world.Session

	width  int
	height int

	showGrid bool
	last     world.MoveResult
	message  string
	errorMsg string
}

func NewExplorerModel(worlds *world.Manager, session *world.Session) ExplorerModel {
	return ExplorerModel{
		worlds:  worlds,
		session: session,
	}
}

func (m *ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m ExplorerModel) Update(msg tea.Msg) (ExplorerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case reseedFailedMsg:
		m.errorMsg = fmt.Sprintf("Reseed failed: %v", msg.err)
	}
	return m, nil
}

func (m ExplorerModel) handleKey(key string) (ExplorerModel, tea.Cmd) {
	switch key {
	case "up", "w":
		m.step(0, -1)
	case "down", "s":
		m.step(0, 1)
	case "left", "a":
		m.step(-1, 0)
	case "right", "d":
		m.step(1, 0)

	case "K", "shift+up":
		m.jump(0, -1)
	case "J", "shift+down":
		m.jump(0, 1)
	case "H", "shift+left":
		m.jump(-1, 0)
	case "L", "shift+right":
		m.jump(1, 0)

	case "0":
		m.home()

	case "g":
		m.showGrid = !m.showGrid

	case "r":
		return m, m.reseedCmd()
	}
	return m, nil
}

func (m *ExplorerModel) step(dx, dy int) {
	res, moved := m.session.Step(context.Background(), dx, dy)
	if !moved {
		m.message = "Blocked"
		return
	}
	m.last = res
	m.message = ""
}

// jump moves the viewer a whole chunk, landing wherever that puts it.
func (m *ExplorerModel) jump(dx, dy int) {
	v := m.session.Viewer()
	size := m.session.Snapshot().ChunkSize
	m.last = m.session.Move(context.Background(), v.TileX+dx*size, v.TileY+dy*size)
	m.message = fmt.Sprintf("Jumped to chunk %s", m.last.Chunk)
}

func (m *ExplorerModel) home() {
	size := m.session.Snapshot().ChunkSize
	m.last = m.session.Move(context.Background(), size/2, size/2)
	m.message = "Back at the spawn room"
}

func (m ExplorerModel) reseedCmd() tea.Cmd {
	worlds, old := m.worlds, m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := worlds.Delete(ctx, old.ID()); err != nil {
			log.Warn("Failed to delete previous world", "world_id", old.ID(), "error", err)
		}
		seed := rand.Int63()
		next, err := worlds.Create(ctx, &seed)
		if err != nil {
			log.Error("Failed to create world", "seed", seed, "error", err)
			return reseedFailedMsg{err: err}
		}
		log.Info("Reseeded world", "world_id", next.ID(), "seed", seed)
		return WorldChangedMsg{Session: next}
	}
}

type reseedFailedMsg struct {
	err error
}

func (m *ExplorerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m ExplorerModel) mapSize() (int, int) {
	w, h := defaultMapWidth, defaultMapHeight
	if m.width > infoPanelWidth+10 {
		w = m.width - infoPanelWidth - 4
	}
	if m.height > chromeHeight+5 {
		h = m.height - chromeHeight
	}
	return w, h
}

// cell resolves what is drawn at an absolute tile. Spawns sit above terrain
// and the viewer sits above everything.
func (m ExplorerModel) cell(x, y int, viewer world.Viewer, markers map[[2]int]spawn.Kind) (string, lipgloss.Style) {
	if x == viewer.TileX && y == viewer.TileY {
		return components.ViewerSymbol, components.ViewerStyle
	}

	t, ok := m.session.TileAt(x, y)
	if !ok {
		return components.UnloadedSymbol, lipgloss.NewStyle()
	}

	style := lipgloss.NewStyle().Foreground(components.TileColor(t))
	if m.showGrid {
		size := m.session.Snapshot().ChunkSize
		if _, lx, ly := chunk.CoordOf(x, y, size); lx == 0 || ly == 0 {
			style = style.Background(components.DarkGray)
		}
	}

	if kind, ok := markers[[2]int{x, y}]; ok {
		return components.SpawnSymbol(kind), style.Foreground(components.SpawnColor(kind)).Bold(true)
	}
	return components.TileSymbol(t), style
}

func (m ExplorerModel) renderMap() string {
	w, h := m.mapSize()
	viewer := m.session.Viewer()
	left, top := viewer.TileX-w/2, viewer.TileY-h/2

	markers := make(map[[2]int]spawn.Kind)
	for _, mk := range m.session.Spawns() {
		markers[[2]int{mk.TileX, mk.TileY}] = mk.Kind
	}

	rows := make([]string, 0, h)
	for y := top; y < top+h; y++ {
		var row strings.Builder
		for x := left; x < left+w; x++ {
			sym, style := m.cell(x, y, viewer, markers)
			row.WriteString(style.Render(sym))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func (m ExplorerModel) renderInfo() string {
	sum := m.session.Snapshot()
	under, loaded := m.session.TileAt(sum.Viewer.TileX, sum.Viewer.TileY)
	underName := "unloaded"
	if loaded {
		underName = under.String()
	}

	lines := []string{
		components.SubtitleStyle.Render("World"),
		fmt.Sprintf("Seed:        %d", sum.Seed),
		fmt.Sprintf("Chunk size:  %d", sum.ChunkSize),
		"",
		components.SubtitleStyle.Render("Viewer"),
		fmt.Sprintf("Tile:        (%d, %d)", sum.Viewer.TileX, sum.Viewer.TileY),
		fmt.Sprintf("Chunk:       %s", sum.Viewer.Chunk),
		fmt.Sprintf("Standing on: %s", underName),
		"",
		components.SubtitleStyle.Render("Window"),
		fmt.Sprintf("Loaded:      %d", sum.Loaded),
		fmt.Sprintf("Connections: %d", sum.Connections),
		fmt.Sprintf("Spawns:      %d", sum.Spawns),
		fmt.Sprintf("Last created:%d", m.last.Created),
	}
	return components.InfoPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m ExplorerModel) View() string {
	var s strings.Builder

	s.WriteString(components.SubtitleStyle.Render("Explorer") + "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		components.FocusedBorderStyle.Render(m.renderMap()),
		" ",
		m.renderInfo(),
	)
	s.WriteString(body + "\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render(m.errorMsg) + "\n")
	}

	status := "WASD/arrows step • HJKL jump chunk • 0 home • g grid • r reseed • q back"
	if m.message != "" {
		status = m.message + " • " + status
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))

	return s.String()
}
