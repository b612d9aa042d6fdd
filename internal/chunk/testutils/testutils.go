package testutils

import (
	"testing"

	"github.com/VoidMesh/dungeon/internal/chunk"
)

// Recorder captures chunk lifecycle notifications from a Manager in the
// order they fire.
type Recorder struct {
	Created []chunk.Coord
	Evicted []chunk.Coord
}

// NewRecorder subscribes a Recorder to m.
func NewRecorder(m *chunk.Manager) *Recorder {
	r := &Recorder{}
	m.OnChunkCreated(func(c chunk.Coord) { r.Created = append(r.Created, c) })
	m.OnChunkEvicted(func(c chunk.Coord) { r.Evicted = append(r.Evicted, c) })
	return r
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Created = nil
	r.Evicted = nil
}

// NewTestManager builds a seeded manager with default options, letting the
// caller tweak them first.
func NewTestManager(t testing.TB, seed int64, tweaks ...func(*chunk.Options)) *chunk.Manager {
	t.Helper()

	opts := chunk.DefaultOptions()
	for _, tweak := range tweaks {
		tweak(&opts)
	}
	return chunk.NewManager(seed, opts)
}

// WithViewDistance sets the view distance.
func WithViewDistance(d int) func(*chunk.Options) {
	return func(o *chunk.Options) { o.ViewDistance = d }
}

// WithUnloadMargin sets the unload margin.
func WithUnloadMargin(d int) func(*chunk.Options) {
	return func(o *chunk.Options) { o.UnloadMargin = d }
}

// OpenEdges lists the edges of c carrying at least one boundary corridor tile.
func OpenEdges(c *chunk.Chunk) []chunk.Edge {
	var out []chunk.Edge
	for _, e := range chunk.Edges {
		if len(c.EdgeOpenings(e)) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// Span returns the positions covered by an opening.
func Span(conn chunk.Connection) []int {
	half := conn.Width / 2
	out := make([]int, 0, 2*half+1)
	for i := -half; i <= half; i++ {
		out = append(out, conn.Position+i)
	}
	return out
}

// CountTiles counts how many tiles of c equal t.
func CountTiles(c *chunk.Chunk, t chunk.Tile) int {
	n := 0
	for _, row := range c.Tiles() {
		for _, v := range row {
			if v == t {
				n++
			}
		}
	}
	return n
}

// Walk moves the window center one chunk at a time along path.
func Walk(m *chunk.Manager, path []chunk.Coord) int {
	created := 0
	for _, c := range path {
		created += m.UpdateWindow(c.X, c.Y)
	}
	return created
}
