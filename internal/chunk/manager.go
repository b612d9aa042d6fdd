package chunk

import (
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Options are the streaming constants a Manager is built with.
type Options struct {
	ChunkSize      int
	ViewDistance   int
	UnloadMargin   int
	MinConnections int
}

// DefaultOptions returns a 32-tile chunk, one chunk of view distance and a
// two chunk unload margin.
func DefaultOptions() Options {
	return Options{
		ChunkSize:      DefaultChunkSize,
		ViewDistance:   DefaultViewDistance,
		UnloadMargin:   DefaultUnloadMargin,
		MinConnections: DefaultMinConnections,
	}
}

func (o Options) normalized() Options {
	if o.ChunkSize < MinChunkSize {
		o.ChunkSize = MinChunkSize
	}
	if o.ViewDistance < 0 {
		o.ViewDistance = 0
	}
	if o.UnloadMargin < 0 {
		o.UnloadMargin = 0
	}
	return o
}

type edgeKey struct {
	coord Coord
	edge  Edge
}

// Manager owns the chunk cache, the connection registry and the world seed.
// It decides which chunks must exist around a viewer, generates missing
// ones, evicts distant ones and answers tile queries in absolute tile
// coordinates.
//
// A Manager is not safe for concurrent use. Generation reads and writes the
// registry, so callers sharing one across goroutines must serialize every
// call.
type Manager struct {
	opts      Options
	seed      int64
	generator Generator

	chunks      map[Coord]*Chunk
	connections map[edgeKey]Connection

	onCreated []func(Coord)
	onEvicted []func(Coord)
}

// NewManager returns a manager that fills chunks with a SeededGenerator
// bound to its own registry.
func NewManager(seed int64, opts Options) *Manager {
	m := newManager(seed, opts)
	m.generator = NewSeededGenerator(seed, m, m.opts.MinConnections)
	return m
}

// NewStandaloneManager returns a manager that fills chunks with a
// StandaloneGenerator. Chunks are not reproducible and their edges do not
// line up.
func NewStandaloneManager(opts Options, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := newManager(rng.Int63(), opts)
	m.generator = NewStandaloneGenerator(rng)
	return m
}

func newManager(seed int64, opts Options) *Manager {
	m := &Manager{
		opts:        opts.normalized(),
		seed:        seed,
		chunks:      make(map[Coord]*Chunk),
		connections: make(map[edgeKey]Connection),
	}

	// The origin is hand-built and never negotiates, so its lanes are in
	// the registry before any chunk exists. Neighbors mirror them no matter
	// which of the two is generated first.
	lane := originLane(m.opts.ChunkSize)
	for _, e := range Edges {
		m.RecordConnection(Coord{}, e, lane)
	}
	return m
}

func (m *Manager) Seed() int64 { return m.seed }
func (m *Manager) Options() Options { return m.opts }
func (m *Manager) ChunkSize() int { return m.opts.ChunkSize }
func (m *Manager) Len() int { return len(m.chunks) }
func (m *Manager) ConnectionCount() int { return len(m.connections) }

// OnChunkCreated registers fn to run once for every newly generated chunk,
// after it is cached and queryable.
func (m *Manager) OnChunkCreated(fn func(Coord)) {
	m.onCreated = append(m.onCreated, fn)
}

// OnChunkEvicted registers fn to run for every chunk dropped from the cache.
func (m *Manager) OnChunkEvicted(fn func(Coord)) {
	m.onEvicted = append(m.onEvicted, fn)
}

// Chunk returns the cached chunk at coord without generating it.
func (m *Manager) Chunk(coord Coord) (*Chunk, bool) {
	c, ok := m.chunks[coord]
	return c, ok
}

// Exists reports whether coord is currently cached.
func (m *Manager) Exists(coord Coord) bool {
	_, ok := m.chunks[coord]
	return ok
}

// Loaded returns the cached coordinates ordered by row, then column.
func (m *Manager) Loaded() []Coord {
	out := make([]Coord, 0, len(m.chunks))
	for coord := range m.chunks {
		out = append(out, coord)
	}
	sortCoords(out)
	return out
}

// UpdateWindow makes sure every chunk within the view distance of
// (centerX, centerY) exists, then evicts every chunk further than
// view distance plus unload margin along either axis. It returns how many
// chunks were generated. Calling it again with the same center is a no-op.
func (m *Manager) UpdateWindow(centerX, centerY int) int {
	view := m.opts.ViewDistance
	created := 0

	for dy := -view; dy <= view; dy++ {
		for dx := -view; dx <= view; dx++ {
			coord := Coord{X: centerX + dx, Y: centerY + dy}
			if m.Exists(coord) {
				continue
			}
			m.generate(coord)
			created++
		}
	}

	evicted := m.evict(centerX, centerY)
	if created > 0 || evicted > 0 {
		log.Debug("chunk window updated", "center_x", centerX, "center_y", centerY, "created", created, "evicted", evicted, "loaded", len(m.chunks), "connections", len(m.connections))
	}
	return created
}

func (m *Manager) generate(coord Coord) *Chunk {
	c := Build(coord, m.opts.ChunkSize, m.generator)

	m.chunks[coord] = c
	for _, fn := range m.onCreated {
		fn(coord)
	}
	return c
}

func (m *Manager) evict(centerX, centerY int) int {
	limit := m.opts.ViewDistance + m.opts.UnloadMargin

	var gone []Coord
	for coord := range m.chunks {
		if abs(coord.X-centerX) > limit || abs(coord.Y-centerY) > limit {
			gone = append(gone, coord)
		}
	}
	sortCoords(gone)

	for _, coord := range gone {
		delete(m.chunks, coord)
		for _, fn := range m.onEvicted {
			fn(coord)
		}
	}
	return len(gone)
}

// CoordOf returns the chunk holding the absolute tile (tileX, tileY).
func (m *Manager) CoordOf(tileX, tileY int) Coord {
	coord, _, _ := CoordOf(tileX, tileY, m.opts.ChunkSize)
	return coord
}

// TileAt returns the tile at an absolute tile coordinate. ok is false when
// the owning chunk is not cached; reads never generate.
func (m *Manager) TileAt(tileX, tileY int) (Tile, bool) {
	coord, lx, ly := CoordOf(tileX, tileY, m.opts.ChunkSize)
	c, ok := m.chunks[coord]
	if !ok {
		return Empty, false
	}
	return c.Tile(lx, ly)
}

// Passable reports whether a viewer may enter the tile. Unknown tiles are
// treated as blocked.
func (m *Manager) Passable(tileX, tileY int) bool {
	t, ok := m.TileAt(tileX, tileY)
	return ok && t.Walkable()
}

// FindSpawn scans square rings of growing radius around tile (0,0) and
// returns the first walkable tile it meets.
func (m *Manager) FindSpawn(radius int) (int, int, bool) {
	for r := 1; r <= radius; r++ {
		for y := -r; y <= r; y++ {
			for x := -r; x <= r; x++ {
				if m.Passable(x, y) {
					return x, y, true
				}
			}
		}
	}
	return 0, 0, false
}

// RecordConnection stores the opening carved on edge of coord. Entries
// outlive the chunk that made them.
func (m *Manager) RecordConnection(coord Coord, edge Edge, conn Connection) {
	m.connections[edgeKey{coord: coord, edge: edge}] = conn
	log.Debug("recorded connection", "chunk_x", coord.X, "chunk_y", coord.Y, "edge", edge, "position", conn.Position, "width", conn.Width)
}

// Connection returns the opening recorded on edge of coord.
func (m *Manager) Connection(coord Coord, edge Edge) (Connection, bool) {
	conn, ok := m.connections[edgeKey{coord: coord, edge: edge}]
	return conn, ok
}

// AdjacentConnection returns the opening the neighbor across edge recorded
// on its opposite edge.
func (m *Manager) AdjacentConnection(coord Coord, edge Edge) (Connection, bool) {
	return m.Connection(coord.Neighbor(edge), edge.Opposite())
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}
