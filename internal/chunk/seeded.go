package chunk

import (
	"github.com/charmbracelet/log"
)

const (
	seededMinRoomSize = 4
	seededMaxRoomSize = 10

	// Openings chosen by this chunk (not mirrored from a neighbor) are
	// centered on the edge midpoint with this width.
	defaultOpeningWidth = 7

	// Probability that a still-closed edge is opened anyway. Unexplored
	// neighbors always get an opening so growth leans outward.
	bonusChanceExplored   = 0.7
	bonusChanceUnexplored = 1.0
)

// Draw key offsets. Each family gets its own residue mod 100 so keys from
// different families never collide.
const (
	keyRoomCount  = 0
	keyRoomWidth  = 1
	keyRoomHeight = 2
	keyRoomX      = 3
	keyRoomY      = 4
	keyBend       = 5
	keyExtraEdge  = 6
	keyBonusEdge  = 7
)

// SeededGenerator deterministically fills chunks from a world seed and keeps
// chunk edges continuous by negotiating openings through a Registry.
type SeededGenerator struct {
	worldSeed      int64
	registry       Registry
	minConnections int
}

// NewSeededGenerator returns a generator bound to registry.
func NewSeededGenerator(worldSeed int64, registry Registry, minConnections int) *SeededGenerator {
	if minConnections < 0 {
		minConnections = 0
	}
	if minConnections > len(Edges) {
		minConnections = len(Edges)
	}
	return &SeededGenerator{
		worldSeed:      worldSeed,
		registry:       registry,
		minConnections: minConnections,
	}
}

func (g *SeededGenerator) Generate(c *Chunk) {
	seed := DeriveSeed(g.worldSeed, c.coord)
	rnd := keyed{seed: seed}

	c.Fill(Wall)
	rooms := g.placeRooms(c, rnd)
	g.chainRooms(c, rooms, rnd)
	open := g.negotiateEdges(c, rnd)
	g.stitchEdges(c, rooms)

	log.Debug("generated chunk", "chunk_x", c.coord.X, "chunk_y", c.coord.Y, "seed", seed, "rooms", len(rooms), "open_edges", open)
}

// placeRooms carves two to four rooms, each kept one tile clear of the boundary.
func (g *SeededGenerator) placeRooms(c *Chunk, rnd keyed) []Room {
	count := 2 + rnd.intn(keyRoomCount, 3)
	span := seededMaxRoomSize - seededMinRoomSize

	rooms := make([]Room, 0, count)
	for i := 0; i < count; i++ {
		k := int64(i)
		w := seededMinRoomSize + rnd.intn(k*100+keyRoomWidth, span)
		h := seededMinRoomSize + rnd.intn(k*200+keyRoomHeight, span)
		r := Room{
			X:      1 + rnd.intn(k*300+keyRoomX, c.size-w-2),
			Y:      1 + rnd.intn(k*400+keyRoomY, c.size-h-2),
			Width:  w,
			Height: h,
		}
		carveRoom(c, r)
		rooms = append(rooms, r)
	}
	return rooms
}

// chainRooms links consecutive rooms center to center.
func (g *SeededGenerator) chainRooms(c *Chunk, rooms []Room, rnd keyed) {
	for i := 0; i+1 < len(rooms); i++ {
		ax, ay := rooms[i].Center()
		bx, by := rooms[i+1].Center()
		carveL(c, ax, ay, bx, by, rnd.float(int64(i)*500+keyBend) > 0.5)
	}
}

// negotiateEdges mirrors every opening a neighbor already committed to, then
// opens more edges until the minimum is met, then rolls bonus openings.
// It returns the number of open edges.
func (g *SeededGenerator) negotiateEdges(c *Chunk, rnd keyed) int {
	var (
		open   [len(Edges)]bool
		exists [len(Edges)]bool
		total  int
	)

	for _, e := range Edges {
		exists[e] = g.registry.Exists(c.coord.Neighbor(e))
		if conn, ok := g.registry.AdjacentConnection(c.coord, e); ok {
			g.open(c, e, conn)
			open[e] = true
			total++
		}
	}

	mid := Connection{Position: c.size / 2, Width: defaultOpeningWidth}

	if total < g.minConnections {
		var unexplored, explored []Edge
		for _, e := range Edges {
			if open[e] {
				continue
			}
			if exists[e] {
				explored = append(explored, e)
			} else {
				unexplored = append(unexplored, e)
			}
		}

		for _, pool := range [][]Edge{unexplored, explored} {
			for total < g.minConnections && len(pool) > 0 {
				i := rnd.intn(int64(total)*1000+keyExtraEdge, len(pool))
				e := pool[i]
				pool = append(pool[:i], pool[i+1:]...)

				g.open(c, e, mid)
				open[e] = true
				total++
			}
		}
	}

	// Roll every closed edge before opening any so each roll only depends
	// on the state left by the minimum pass.
	var bonus [len(Edges)]bool
	for i, e := range Edges {
		p := bonusChanceUnexplored
		if exists[e] {
			p = bonusChanceExplored
		}
		bonus[e] = !open[e] && rnd.chance(int64(5000+1000*i)+keyBonusEdge, p)
	}
	for _, frontier := range []bool{true, false} {
		for _, e := range Edges {
			if bonus[e] && !open[e] && exists[e] != frontier {
				g.open(c, e, mid)
				open[e] = true
				total++
			}
		}
	}

	return total
}

func (g *SeededGenerator) open(c *Chunk, e Edge, conn Connection) {
	c.carveOpening(e, conn)
	g.registry.RecordConnection(c.coord, e, conn)
}

// stitchEdges connects every boundary corridor tile to its nearest room. The
// first leg always leaves the boundary perpendicularly so the seam itself
// only ever carries the negotiated openings.
func (g *SeededGenerator) stitchEdges(c *Chunk, rooms []Room) {
	if len(rooms) == 0 {
		return
	}

	type point struct {
		edge Edge
		x, y int
	}
	var points []point
	for _, e := range Edges {
		for _, pos := range c.EdgeOpenings(e) {
			x, y := c.edgePoint(e, pos, 0)
			points = append(points, point{edge: e, x: x, y: y})
		}
	}

	for _, p := range points {
		nearest := rooms[0]
		best := -1
		for _, r := range rooms {
			cx, cy := r.Center()
			d := abs(cx-p.x) + abs(cy-p.y)
			if best < 0 || d < best {
				best = d
				nearest = r
			}
		}

		cx, cy := nearest.Center()
		horizontalFirst := p.edge == East || p.edge == West
		carveL(c, p.x, p.y, cx, cy, horizontalFirst)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
