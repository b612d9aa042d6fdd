package chunk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandalonePlacesEnoughRooms(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g := NewStandaloneGenerator(rand.New(rand.NewSource(seed)))
		c := newChunk(Coord{X: 1}, DefaultChunkSize)

		rooms := g.placeRooms(c)
		require.GreaterOrEqual(t, len(rooms), standaloneRequiredRooms, "seed %d", seed)
		assert.LessOrEqual(t, len(rooms), standaloneMinRooms+standaloneRoomSpread-1)

		for i, a := range rooms {
			assert.GreaterOrEqual(t, a.X, 1)
			assert.GreaterOrEqual(t, a.Y, 1)
			assert.Less(t, a.X+a.Width, c.size)
			assert.Less(t, a.Y+a.Height, c.size)
			for _, b := range rooms[i+1:] {
				assert.False(t, a.overlaps(b, 1), "rooms %v and %v touch", a, b)
			}
		}
	}
}

func TestStandaloneForcesCornerRooms(t *testing.T) {
	g := NewStandaloneGenerator(rand.New(rand.NewSource(1)))
	// Small chunks often fit fewer random rooms than required.
	c := newChunk(Coord{X: 1}, MinChunkSize)
	rooms := g.placeRooms(c)
	assert.GreaterOrEqual(t, len(rooms), standaloneRequiredRooms)
}

func TestStandaloneConnectsAllEdges(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := NewStandaloneGenerator(rand.New(rand.NewSource(seed)))
		c := newChunk(Coord{X: -1, Y: 2}, DefaultChunkSize)
		g.Generate(c)

		for _, e := range Edges {
			openings := c.EdgeOpenings(e)
			assert.GreaterOrEqual(t, len(openings), 3, "seed %d edge %s", seed, e)
		}
	}
}

func TestStandaloneReproducibleWithSameRand(t *testing.T) {
	a := newChunk(Coord{X: 9}, DefaultChunkSize)
	b := newChunk(Coord{X: 9}, DefaultChunkSize)
	NewStandaloneGenerator(rand.New(rand.NewSource(8))).Generate(a)
	NewStandaloneGenerator(rand.New(rand.NewSource(8))).Generate(b)
	assert.Equal(t, a.Tiles(), b.Tiles())
}
