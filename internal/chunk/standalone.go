package chunk

import (
	"math/rand"
	"time"
)

const (
	standaloneMinRooms      = 8
	standaloneRoomSpread    = 8
	standalonePlaceAttempts = 100
	standaloneMinRoomSize   = 3
	standaloneRoomSizeRange = 8
	standaloneRequiredRooms = 3
	standaloneCornerRoom    = 5
	standaloneEdgeWiden     = 2
)

// StandaloneGenerator fills a chunk on its own: no seed contract, no
// registry, no promise that its edges meet a neighbor's. It is meant for
// isolated or offline use only.
type StandaloneGenerator struct {
	rng *rand.Rand
}

// NewStandaloneGenerator uses rng for every draw. A nil rng is seeded from
// the clock.
func NewStandaloneGenerator(rng *rand.Rand) *StandaloneGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &StandaloneGenerator{rng: rng}
}

func (g *StandaloneGenerator) Generate(c *Chunk) {
	c.Fill(Wall)
	rooms := g.placeRooms(c)
	g.chainRooms(c, rooms)
	g.connectEdges(c, rooms)
}

func (g *StandaloneGenerator) placeRooms(c *Chunk) []Room {
	target := standaloneMinRooms + g.rng.Intn(standaloneRoomSpread)
	var rooms []Room

	for attempt := 0; attempt < standalonePlaceAttempts && len(rooms) < target; attempt++ {
		w := standaloneMinRoomSize + g.rng.Intn(standaloneRoomSizeRange)
		h := standaloneMinRoomSize + g.rng.Intn(standaloneRoomSizeRange)
		candidate := Room{
			X:      1 + g.rng.Intn(c.size-w-2),
			Y:      1 + g.rng.Intn(c.size-h-2),
			Width:  w,
			Height: h,
		}

		blocked := false
		for _, r := range rooms {
			if candidate.overlaps(r, 1) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		carveRoom(c, candidate)
		rooms = append(rooms, candidate)
	}

	if len(rooms) < standaloneRequiredRooms {
		far := c.size - standaloneCornerRoom - 1
		corners := []Room{
			{X: 1, Y: 1, Width: standaloneCornerRoom, Height: standaloneCornerRoom},
			{X: far, Y: 1, Width: standaloneCornerRoom, Height: standaloneCornerRoom},
			{X: 1, Y: far, Width: standaloneCornerRoom, Height: standaloneCornerRoom},
			{X: far, Y: far, Width: standaloneCornerRoom, Height: standaloneCornerRoom},
		}
		for _, r := range corners {
			if len(rooms) >= standaloneRequiredRooms {
				break
			}
			carveRoom(c, r)
			rooms = append(rooms, r)
		}
	}

	return rooms
}

func (g *StandaloneGenerator) chainRooms(c *Chunk, rooms []Room) {
	for i := 0; i+1 < len(rooms); i++ {
		ax, ay := rooms[i].Center()
		bx, by := rooms[i+1].Center()
		carveL(c, ax, ay, bx, by, g.rng.Intn(2) == 0)
	}
}

// connectEdges runs a corridor from the room nearest each edge straight out
// to that edge, then widens the exit two tiles either side.
func (g *StandaloneGenerator) connectEdges(c *Chunk, rooms []Room) {
	if len(rooms) == 0 {
		return
	}

	north, south, west, east := rooms[0], rooms[0], rooms[0], rooms[0]
	for _, r := range rooms[1:] {
		// Compare doubled centers to keep half-tile precision in integers.
		cx, cy := 2*r.X+r.Width, 2*r.Y+r.Height
		if cy < 2*north.Y+north.Height {
			north = r
		}
		if cy > 2*south.Y+south.Height {
			south = r
		}
		if cx < 2*west.X+west.Width {
			west = r
		}
		if cx > 2*east.X+east.Width {
			east = r
		}
	}

	last := c.size - 1

	nx, _ := north.Center()
	carveV(c, north.Y, 0, nx)
	g.widen(c, North, nx)

	sx, _ := south.Center()
	carveV(c, south.Y+south.Height-1, last, sx)
	g.widen(c, South, sx)

	_, wy := west.Center()
	carveH(c, west.X, 0, wy)
	g.widen(c, West, wy)

	_, ey := east.Center()
	carveH(c, east.X+east.Width-1, last, ey)
	g.widen(c, East, ey)
}

func (g *StandaloneGenerator) widen(c *Chunk, e Edge, pos int) {
	c.carveOpening(e, Connection{Position: pos, Width: 2*standaloneEdgeWiden + 1})
}
