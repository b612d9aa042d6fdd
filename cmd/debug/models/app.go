package models

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/dungeon/internal/world"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	ExplorerView
	InspectorView
	OverviewView
)

const viewCount = 4

// App is the main application model
type App struct {
	worlds  *world.Manager
	session *world.Session

	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu      MenuModel
	explorer  ExplorerModel
	inspector InspectorModel
	overview  OverviewModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance around an already created world.
func NewApp(worlds *world.Manager, session *world.Session, startView string) *App {
	app := &App{
		worlds:      worlds,
		session:     session,
		currentView: MenuView,
	}

	app.menu = NewMenuModel()
	app.explorer = NewExplorerModel(worlds, session)
	app.inspector = NewInspectorModel(session)
	app.overview = NewOverviewModel(session)

	switch startView {
	case "explorer":
		app.currentView = ExplorerView
	case "chunks":
		app.currentView = InspectorView
	case "overview":
		app.currentView = OverviewView
	default:
		app.currentView = MenuView
	}

	return app
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool", "world_id", m.session.ID(), "seed", m.session.Seed())
	return m.getCurrentViewModel().Init()
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.explorer.SetSize(msg.Width, msg.Height)
		m.inspector.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q", "esc":
			if m.currentView == MenuView {
				return m, m.quit()
			}
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			m.currentView = ViewType((int(m.currentView) + 1) % viewCount)
			return m, m.getCurrentViewModel().Init()
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.getCurrentViewModel().Init()

	case WorldChangedMsg:
		m.setSession(msg.Session)
		return m, m.getCurrentViewModel().Init()
	}

	if m.showHelp {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
	case ExplorerView:
		m.explorer, cmd = m.explorer.Update(msg)
	case InspectorView:
		m.inspector, cmd = m.inspector.Update(msg)
	case OverviewView:
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case ExplorerView:
		return m.explorer.View()
	case InspectorView:
		return m.inspector.View()
	case OverviewView:
		return m.overview.View()
	}

	return "Unknown view"
}

func (m *App) setSession(s *world.Session) {
	m.session = s
	m.explorer.session = s
	m.explorer.last = world.MoveResult{}
	m.explorer.errorMsg = ""
	m.inspector.SetSession(s)
	m.overview.SetSession(s)
}

// quit drops the debug world before leaving so its journal rows go with it.
func (m *App) quit() tea.Cmd {
	if err := m.worlds.Delete(context.Background(), m.session.ID()); err != nil {
		log.Warn("Failed to delete debug world", "world_id", m.session.ID(), "error", err)
	}
	return tea.Quit
}

type initer interface {
	Init() tea.Cmd
}

func (m *App) getCurrentViewModel() initer {
	switch m.currentView {
	case ExplorerView:
		return &m.explorer
	case InspectorView:
		return &m.inspector
	case OverviewView:
		return &m.overview
	}
	return &m.menu
}

func renderHelp() string {
	return `
+- Dungeon Debug Tool - Help --------------------------+
|                                                      |
| Global Keys:                                         |
|   q, Esc       Back to menu / quit from menu         |
|   Ctrl+C       Quit                                  |
|   ?            Toggle this help                      |
|   Tab          Cycle through views                   |
|                                                      |
| Explorer:                                            |
|   Arrows, WASD Step one tile                         |
|   H J K L      Jump one chunk west/south/north/east  |
|   0            Return to the spawn room              |
|   g            Toggle chunk grid                     |
|   r            New world with a random seed          |
|                                                      |
| Chunk Inspector:                                     |
|   Up/Down      Select a loaded chunk                 |
|                                                      |
| Press ? again to close this help                     |
+------------------------------------------------------+
`
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}

// WorldChangedMsg replaces the world every view renders.
type WorldChangedMsg struct {
	Session *world.Session
}
