package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/spawn"
	"github.com/VoidMesh/dungeon/internal/world"
)

func newTestWorld(t *testing.T) (*world.Manager, *world.Session) {
	t.Helper()
	worlds := world.NewManager(world.DefaultOptions(), nil)
	seed := int64(42)
	session, err := worlds.Create(context.Background(), &seed)
	require.NoError(t, err)
	return worlds, session
}

func TestDescribeOpenings(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      string
	}{
		{"closed", nil, "closed"},
		{"single", []int{4}, "4"},
		{"run", []int{14, 15, 16, 17, 18}, "14-18"},
		{"mixed", []int{1, 2, 3, 7, 9, 10}, "1-3,7,9-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeOpenings(tt.positions))
		})
	}
}

func TestExplorerMovement(t *testing.T) {
	worlds, session := newTestWorld(t)
	m := NewExplorerModel(worlds, session)

	start := session.Viewer()
	require.Equal(t, chunk.Coord{}, start.Chunk)

	// The spawn sits in the corner of the origin room, so east is floor and
	// north is the surrounding wall.
	m, _ = m.handleKey("d")
	assert.Equal(t, start.TileX+1, session.Viewer().TileX)
	assert.Empty(t, m.message)

	m, _ = m.handleKey("w")
	assert.Equal(t, "Blocked", m.message)
	assert.Equal(t, start.TileY, session.Viewer().TileY)

	m, _ = m.handleKey("L")
	assert.Equal(t, chunk.Coord{X: 1, Y: 0}, session.Viewer().Chunk)
	assert.Equal(t, chunk.Coord{X: 1, Y: 0}, m.last.Chunk)

	m, _ = m.handleKey("0")
	v := session.Viewer()
	assert.Equal(t, chunk.DefaultChunkSize/2, v.TileX)
	assert.Equal(t, chunk.DefaultChunkSize/2, v.TileY)
	assert.Equal(t, chunk.Coord{}, v.Chunk)

	m, _ = m.handleKey("g")
	assert.True(t, m.showGrid)
}

func TestExplorerCellLayers(t *testing.T) {
	worlds, session := newTestWorld(t)
	m := NewExplorerModel(worlds, session)
	viewer := session.Viewer()

	sym, _ := m.cell(viewer.TileX, viewer.TileY, viewer, nil)
	assert.Equal(t, "@", sym)

	sym, _ = m.cell(0, 0, viewer, nil)
	assert.Equal(t, "#", sym)

	sym, _ = m.cell(10_000, 10_000, viewer, nil)
	assert.Equal(t, " ", sym)

	markers := map[[2]int]spawn.Kind{{5, 5}: spawn.BabySlime}
	sym, _ = m.cell(5, 5, viewer, markers)
	assert.Equal(t, "s", sym)
}

func TestExplorerReseed(t *testing.T) {
	worlds, session := newTestWorld(t)
	m := NewExplorerModel(worlds, session)

	_, cmd := m.handleKey("r")
	require.NotNil(t, cmd)

	msg, ok := cmd().(WorldChangedMsg)
	require.True(t, ok)
	assert.NotEqual(t, session.ID(), msg.Session.ID())

	_, err := worlds.Get(session.ID())
	assert.ErrorIs(t, err, world.ErrWorldNotFound)
	assert.Equal(t, 1, worlds.Len())
}

func TestAppViews(t *testing.T) {
	worlds, session := newTestWorld(t)
	app := NewApp(worlds, session, "menu")
	assert.Equal(t, MenuView, app.currentView)

	app.Update(NewSwitchViewMsg(InspectorView))
	assert.Equal(t, InspectorView, app.currentView)
	selected, ok := app.inspector.Selected()
	require.True(t, ok)
	assert.Equal(t, session.Viewer().Chunk, selected)

	app.Update(NewSwitchViewMsg(ExplorerView))
	assert.Contains(t, app.View(), "Explorer")

	seed := int64(7)
	next, err := worlds.Create(context.Background(), &seed)
	require.NoError(t, err)

	app.Update(WorldChangedMsg{Session: next})
	assert.Same(t, next, app.session)
	assert.Same(t, next, app.explorer.session)
	assert.Same(t, next, app.inspector.session)
	assert.Same(t, next, app.overview.session)
}

func TestOverviewIgnoresStaleEvents(t *testing.T) {
	_, session := newTestWorld(t)
	m := NewOverviewModel(session)

	m, _ = m.Update(eventsLoadedMsg{worldID: "other", events: []world.ChunkEvent{{WorldID: "other"}}})
	assert.Empty(t, m.events)

	m, _ = m.Update(eventsLoadedMsg{worldID: session.ID(), events: []world.ChunkEvent{{WorldID: session.ID()}}})
	assert.Len(t, m.events, 1)
	assert.False(t, m.lastUpdated.IsZero())
}
