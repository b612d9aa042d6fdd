package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistry is an in-memory Registry whose neighbor existence is set by hand.
type fakeRegistry struct {
	conns    map[edgeKey]Connection
	existing map[Coord]bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		conns:    make(map[edgeKey]Connection),
		existing: make(map[Coord]bool),
	}
}

func (r *fakeRegistry) RecordConnection(coord Coord, edge Edge, conn Connection) {
	r.conns[edgeKey{coord: coord, edge: edge}] = conn
}

func (r *fakeRegistry) Connection(coord Coord, edge Edge) (Connection, bool) {
	c, ok := r.conns[edgeKey{coord: coord, edge: edge}]
	return c, ok
}

func (r *fakeRegistry) AdjacentConnection(coord Coord, edge Edge) (Connection, bool) {
	return r.Connection(coord.Neighbor(edge), edge.Opposite())
}

func (r *fakeRegistry) Exists(coord Coord) bool {
	return r.existing[coord]
}

func generateWith(reg Registry, seed int64, coord Coord, minConnections int) *Chunk {
	return Build(coord, DefaultChunkSize, NewSeededGenerator(seed, reg, minConnections))
}

func TestSeededDeterminism(t *testing.T) {
	coords := []Coord{{X: 1, Y: 0}, {X: -3, Y: 7}, {X: 12, Y: -12}, {X: 0, Y: 1}}
	for _, seed := range []int64{0, 1, 42, -5, 1 << 40} {
		for _, coord := range coords {
			a := generateWith(newFakeRegistry(), seed, coord, 2)
			b := generateWith(newFakeRegistry(), seed, coord, 2)
			assert.Equal(t, a.Tiles(), b.Tiles(), "seed %d coord %s", seed, coord)
		}
	}
}

func TestSeededDependsOnSeed(t *testing.T) {
	coord := Coord{X: 4, Y: 4}
	base := generateWith(newFakeRegistry(), 1, coord, 2).Tiles()

	differs := false
	for seed := int64(2); seed < 10 && !differs; seed++ {
		if !assert.ObjectsAreEqual(base, generateWith(newFakeRegistry(), seed, coord, 2).Tiles()) {
			differs = true
		}
	}
	assert.True(t, differs, "different world seeds should produce different layouts")
}

func TestSeededRoomsStayInsideMargin(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		c := newChunk(Coord{X: 2, Y: 3}, DefaultChunkSize)
		g := NewSeededGenerator(seed, newFakeRegistry(), 2)
		rooms := g.placeRooms(c, keyed{seed: DeriveSeed(seed, c.coord)})

		require.GreaterOrEqual(t, len(rooms), 2)
		require.LessOrEqual(t, len(rooms), 4)
		for _, r := range rooms {
			assert.GreaterOrEqual(t, r.X, 1)
			assert.GreaterOrEqual(t, r.Y, 1)
			assert.LessOrEqual(t, r.X+r.Width, c.size-1)
			assert.LessOrEqual(t, r.Y+r.Height, c.size-1)
			assert.GreaterOrEqual(t, r.Width, seededMinRoomSize)
			assert.Less(t, r.Width, seededMaxRoomSize)
		}
	}
}

func TestSeededMirrorsNeighborConnection(t *testing.T) {
	reg := newFakeRegistry()
	coord := Coord{X: 1, Y: 0}
	west := coord.Neighbor(West)
	reg.existing[west] = true
	reg.RecordConnection(west, East, Connection{Position: 9, Width: 5})

	c := generateWith(reg, 77, coord, 2)

	got, ok := reg.Connection(coord, West)
	require.True(t, ok, "mirrored edge must be recorded for the new chunk")
	assert.Equal(t, Connection{Position: 9, Width: 5}, got)

	for y := 7; y <= 11; y++ {
		for x := 0; x < 2; x++ {
			v, _ := c.Tile(x, y)
			assert.Equal(t, Corridor, v, "west opening tile (%d,%d)", x, y)
		}
	}
}

func TestSeededMeetsMinimumWhenAllNeighborsExist(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		reg := newFakeRegistry()
		coord := Coord{X: 5, Y: 5}
		for _, e := range Edges {
			reg.existing[coord.Neighbor(e)] = true
		}

		c := generateWith(reg, seed, coord, 2)

		open := 0
		for _, e := range Edges {
			if len(c.EdgeOpenings(e)) > 0 {
				open++
			}
		}
		assert.GreaterOrEqual(t, open, 2, "seed %d", seed)
	}
}

func TestSeededOpensEveryUnexploredEdge(t *testing.T) {
	reg := newFakeRegistry()
	coord := Coord{X: -8, Y: 3}

	c := generateWith(reg, 5, coord, 2)

	for _, e := range Edges {
		conn, ok := reg.Connection(coord, e)
		require.True(t, ok, "edge %s facing unexplored space should open", e)
		assert.Equal(t, Connection{Position: c.size / 2, Width: defaultOpeningWidth}, conn)
	}
}

func TestSeededMinimumFour(t *testing.T) {
	reg := newFakeRegistry()
	coord := Coord{X: 2, Y: 2}
	for _, e := range Edges {
		reg.existing[coord.Neighbor(e)] = true
	}

	c := generateWith(reg, 11, coord, 4)
	for _, e := range Edges {
		assert.NotEmpty(t, c.EdgeOpenings(e), "edge %s", e)
	}
}

func TestSeededOpeningsShareOneComponent(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		c := generateWith(newFakeRegistry(), seed, Coord{X: 1, Y: 1}, 2)

		var openings [][2]int
		for _, e := range Edges {
			for _, pos := range c.EdgeOpenings(e) {
				x, y := c.edgePoint(e, pos, 0)
				openings = append(openings, [2]int{x, y})
			}
		}
		require.NotEmpty(t, openings)

		reached := walkableFrom(c, openings[0][0], openings[0][1])
		for _, p := range openings {
			assert.True(t, reached[p], "seed %d: edge tile %v is cut off", seed, p)
		}
	}
}

func walkableFrom(c *Chunk, sx, sy int) map[[2]int]bool {
	seen := map[[2]int]bool{{sx, sy}: true}
	queue := [][2]int{{sx, sy}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := [2]int{p[0] + d[0], p[1] + d[1]}
			v, ok := c.Tile(n[0], n[1])
			if !ok || seen[n] || !v.Walkable() {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}
