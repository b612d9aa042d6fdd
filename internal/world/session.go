package world

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/spawn"
)

// Session is one seeded world and its viewer. All access to the chunk
// manager goes through the session mutex, so at most one generation runs
// per world at a time.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	lastSeen  time.Time
	now       func() time.Time

	chunks  *chunk.Manager
	spawner *spawn.Spawner
	journal Journal
	viewer  Viewer

	pending []ChunkEvent
}

func newSession(id string, seed int64, opts Options, journal Journal, now func() time.Time) *Session {
	s := &Session{
		id:        id,
		createdAt: now(),
		lastSeen:  now(),
		now:       now,
		chunks:    chunk.NewManager(seed, opts.Chunk),
		journal:   journal,
	}
	s.spawner = spawn.New(s.chunks, opts.Spawn)
	s.chunks.OnChunkCreated(func(c chunk.Coord) { s.queue(c, ChunkCreated) })
	s.chunks.OnChunkEvicted(func(c chunk.Coord) { s.queue(c, ChunkEvicted) })
	return s
}

func (s *Session) ID() string { return s.id }
func (s *Session) Seed() int64 { return s.chunks.Seed() }

func (s *Session) queue(c chunk.Coord, kind EventKind) {
	s.pending = append(s.pending, ChunkEvent{
		WorldID:   s.id,
		Chunk:     c,
		Kind:      kind,
		CreatedAt: s.now(),
	})
}

// flush hands queued lifecycle events to the journal. Journal failures are
// logged and never undo generation.
func (s *Session) flush(ctx context.Context) {
	events := s.pending
	s.pending = nil
	if s.journal == nil || len(events) == 0 {
		return
	}
	if err := s.journal.RecordChunkEvents(ctx, events); err != nil {
		log.Error("Failed to journal chunk events", "error", err, "world_id", s.id, "events", len(events))
	}
}

// spawnViewer loads the origin window and puts the viewer on the first
// walkable tile around (0,0).
func (s *Session) spawnViewer(ctx context.Context, radius int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks.UpdateWindow(0, 0)
	x, y, ok := s.chunks.FindSpawn(radius)
	if !ok {
		x, y = s.chunks.ChunkSize()/2, s.chunks.ChunkSize()/2
	}
	s.viewer = Viewer{TileX: x, TileY: y, Chunk: s.chunks.CoordOf(x, y)}
	s.chunks.UpdateWindow(s.viewer.Chunk.X, s.viewer.Chunk.Y)
	s.flush(ctx)

	log.Debug("viewer spawned", "world_id", s.id, "tile_x", x, "tile_y", y)
}

// Move centers the viewer on an absolute tile and updates the chunk window
// around the chunk holding it.
func (s *Session) Move(ctx context.Context, tileX, tileY int) MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(ctx, tileX, tileY)
}

// Step moves the viewer by (dx, dy) tiles if the target is passable.
// It reports whether the viewer moved.
func (s *Session) Step(ctx context.Context, dx, dy int) (MoveResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, y := s.viewer.TileX+dx, s.viewer.TileY+dy
	if !s.chunks.Passable(x, y) {
		return MoveResult{Chunk: s.viewer.Chunk}, false
	}
	return s.moveLocked(ctx, x, y), true
}

// moveLocked requires s.mu.
func (s *Session) moveLocked(ctx context.Context, tileX, tileY int) MoveResult {
	coord := s.chunks.CoordOf(tileX, tileY)
	s.viewer = Viewer{TileX: tileX, TileY: tileY, Chunk: coord}
	s.lastSeen = s.now()

	created := s.chunks.UpdateWindow(coord.X, coord.Y)
	s.flush(ctx)

	return MoveResult{Chunk: coord, Created: created}
}

func (s *Session) Viewer() Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer
}

// TileAt reads an absolute tile. ok is false when the chunk is not loaded.
func (s *Session) TileAt(tileX, tileY int) (chunk.Tile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks.TileAt(tileX, tileY)
}

// Chunk returns a loaded chunk. Chunks are never modified after
// generation, so the result stays valid after eviction.
func (s *Session) Chunk(coord chunk.Coord) (*chunk.Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks.Chunk(coord)
}

func (s *Session) Loaded() []chunk.Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks.Loaded()
}

func (s *Session) Spawns() []spawn.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawner.Markers()
}

func (s *Session) Snapshot() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		WorldID:     s.id,
		Seed:        s.chunks.Seed(),
		ChunkSize:   s.chunks.ChunkSize(),
		Viewer:      s.viewer,
		Loaded:      s.chunks.Len(),
		Connections: s.chunks.ConnectionCount(),
		Spawns:      s.spawner.Len(),
		CreatedAt:   s.createdAt,
		LastActive:  s.lastSeen,
	}
}

// Events returns up to limit journaled chunk events, newest first. Without a
// journal there is nothing to return.
func (s *Session) Events(ctx context.Context, limit int) ([]ChunkEvent, error) {
	if s.journal == nil {
		return []ChunkEvent{}, nil
	}
	return s.journal.ChunkEvents(ctx, s.id, limit)
}

// EventTotals counts the world's journaled events. Without a journal both
// counts are zero.
func (s *Session) EventTotals(ctx context.Context) (EventTotals, error) {
	var totals EventTotals
	if s.journal == nil {
		return totals, nil
	}

	var err error
	if totals.Created, err = s.journal.CountChunkEvents(ctx, s.id, ChunkCreated); err != nil {
		return EventTotals{}, err
	}
	if totals.Evicted, err = s.journal.CountChunkEvents(ctx, s.id, ChunkEvicted); err != nil {
		return EventTotals{}, err
	}
	return totals, nil
}

// Connection returns the opening recorded on edge of coord. Records outlive
// eviction, so this answers for chunks that are no longer loaded.
func (s *Session) Connection(coord chunk.Coord, edge chunk.Edge) (chunk.Connection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks.Connection(coord, edge)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
