package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/dungeon/cmd/debug/components"
	"github.com/VoidMesh/dungeon/internal/world"
)

const (
	overviewEventLimit = 20
	overviewRefresh    = 2 * time.Second
)

// OverviewModel shows the world summary and the newest journaled chunk events.
type OverviewModel struct {
	session *world.Session
	width   int
	height  int

	summary     world.Summary
	events      []world.ChunkEvent
	lastUpdated time.Time
	errorMsg    string
}

type eventsLoadedMsg struct {
	worldID string
	events  []world.ChunkEvent
	err     error
}

type overviewTickMsg time.Time

func NewOverviewModel(session *world.Session) OverviewModel {
	return OverviewModel{session: session}
}

func (m *OverviewModel) Init() tea.Cmd {
	m.summary = m.session.Snapshot()
	return tea.Batch(m.loadEventsCmd(), m.tickCmd())
}

func (m *OverviewModel) SetSession(s *world.Session) {
	m.session = s
	m.events = nil
	m.errorMsg = ""
}

func (m OverviewModel) loadEventsCmd() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		events, err := s.Events(ctx, overviewEventLimit)
		return eventsLoadedMsg{worldID: s.ID(), events: events, err: err}
	}
}

func (m OverviewModel) tickCmd() tea.Cmd {
	return tea.Tick(overviewRefresh, func(t time.Time) tea.Msg {
		return overviewTickMsg(t)
	})
}

func (m OverviewModel) Update(msg tea.Msg) (OverviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.worldID != m.session.ID() {
			return m, nil
		}
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to load events: %v", msg.err)
			return m, nil
		}
		m.events = msg.events
		m.errorMsg = ""
		m.lastUpdated = time.Now()

	case overviewTickMsg:
		m.summary = m.session.Snapshot()
		return m, tea.Batch(m.loadEventsCmd(), m.tickCmd())

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.summary = m.session.Snapshot()
			return m, m.loadEventsCmd()
		}
	}
	return m, nil
}

func (m OverviewModel) View() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render("World Overview") + "\n")

	sum := m.summary
	info := []string{
		fmt.Sprintf("World:        %s", sum.WorldID),
		fmt.Sprintf("Seed:         %d", sum.Seed),
		fmt.Sprintf("Chunk size:   %d", sum.ChunkSize),
		fmt.Sprintf("Viewer:       (%d, %d) in %s", sum.Viewer.TileX, sum.Viewer.TileY, sum.Viewer.Chunk),
		fmt.Sprintf("Loaded:       %d chunks", sum.Loaded),
		fmt.Sprintf("Connections:  %d", sum.Connections),
		fmt.Sprintf("Spawns:       %d", sum.Spawns),
		fmt.Sprintf("Created:      %s", sum.CreatedAt.Format(time.TimeOnly)),
	}
	s.WriteString(components.BorderStyle.Render(strings.Join(info, "\n")) + "\n")

	s.WriteString(components.SubtitleStyle.Render("Chunk journal") + "\n")
	switch {
	case m.errorMsg != "":
		s.WriteString(components.ErrorStyle.Render(m.errorMsg) + "\n")
	case len(m.events) == 0:
		s.WriteString(components.HelpStyle.Render("No journaled events. Start with -db to record chunk lifecycle.") + "\n")
	default:
		s.WriteString(components.TableHeaderStyle.Render(fmt.Sprintf("%-10s %-9s %s", "time", "kind", "chunk")) + "\n")
		for _, ev := range m.events {
			s.WriteString(components.TableCellStyle.Render(fmt.Sprintf("%-10s %-9s %s", ev.CreatedAt.Local().Format(time.TimeOnly), ev.Kind, ev.Chunk)) + "\n")
		}
	}

	status := "r refresh • q back"
	if !m.lastUpdated.IsZero() {
		status = fmt.Sprintf("Updated %s • %s", m.lastUpdated.Format(time.TimeOnly), status)
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))
	return s.String()
}

func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
