package chunk

import (
	"strings"
)

// Chunk is one square region of the world: its coordinate and an N×N grid.
// Tiles are stored row-major.
type Chunk struct {
	coord Coord
	size  int
	tiles []Tile
}

func newChunk(coord Coord, size int) *Chunk {
	c := &Chunk{
		coord: coord,
		size:  size,
		tiles: make([]Tile, size*size),
	}
	c.Fill(Wall)
	return c
}

// Build creates and populates the chunk at coord. The origin chunk is always
// the fixed spawn room. Every other chunk is filled by gen; a nil gen falls
// back to a standalone generator with no cross-chunk awareness.
func Build(coord Coord, size int, gen Generator) *Chunk {
	c := newChunk(coord, size)

	switch {
	case coord.IsOrigin():
		c.carveOrigin()
	case gen != nil:
		gen.Generate(c)
	default:
		NewStandaloneGenerator(nil).Generate(c)
	}

	c.smoothEdges()
	return c
}

func (c *Chunk) Coord() Coord { return c.coord }
func (c *Chunk) Size() int { return c.size }

func (c *Chunk) inBounds(x, y int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size
}

// Tile returns the tile at local (x, y). ok is false outside the grid.
func (c *Chunk) Tile(x, y int) (Tile, bool) {
	if !c.inBounds(x, y) {
		return Empty, false
	}
	return c.tiles[y*c.size+x], true
}

// SetTile writes the tile at local (x, y). Writes outside the grid are ignored.
func (c *Chunk) SetTile(x, y int, t Tile) {
	if !c.inBounds(x, y) {
		return
	}
	c.tiles[y*c.size+x] = t
}

// Fill overwrites every tile with t.
func (c *Chunk) Fill(t Tile) {
	for i := range c.tiles {
		c.tiles[i] = t
	}
}

// Tiles returns a copy of the grid indexed [y][x].
func (c *Chunk) Tiles() [][]Tile {
	rows := make([][]Tile, c.size)
	for y := range rows {
		rows[y] = make([]Tile, c.size)
		copy(rows[y], c.tiles[y*c.size:(y+1)*c.size])
	}
	return rows
}

// Rows renders each row with Tile.Glyph.
func (c *Chunk) Rows() []string {
	rows := make([]string, c.size)
	buf := make([]byte, c.size)
	for y := 0; y < c.size; y++ {
		for x := 0; x < c.size; x++ {
			buf[x] = c.tiles[y*c.size+x].Glyph()
		}
		rows[y] = string(buf)
	}
	return rows
}

func (c *Chunk) String() string {
	return strings.Join(c.Rows(), "\n")
}

// edgePoint maps a position along edge e to local coordinates, depth tiles
// inboard from the boundary.
func (c *Chunk) edgePoint(e Edge, pos, depth int) (int, int) {
	last := c.size - 1
	switch e {
	case North:
		return pos, depth
	case South:
		return pos, last - depth
	case East:
		return last - depth, pos
	default:
		return depth, pos
	}
}

// EdgeOpenings returns the positions along e that hold a Corridor tile on
// the boundary itself, in ascending order.
func (c *Chunk) EdgeOpenings(e Edge) []int {
	var out []int
	for i := 0; i < c.size; i++ {
		x, y := c.edgePoint(e, i, 0)
		if t, _ := c.Tile(x, y); t == Corridor {
			out = append(out, i)
		}
	}
	return out
}

// carveOpening punches a corridor of the given width through edge e,
// centered on pos and two tiles deep.
func (c *Chunk) carveOpening(e Edge, conn Connection) {
	half := conn.Width / 2
	for i := -half; i <= half; i++ {
		pos := conn.Position + i
		if pos < 0 || pos >= c.size {
			continue
		}
		for depth := 0; depth < 2; depth++ {
			x, y := c.edgePoint(e, pos, depth)
			c.SetTile(x, y, Corridor)
		}
	}
}

// originLane is the exit punched through each edge of the origin chunk.
func originLane(size int) Connection {
	return Connection{Position: size / 2, Width: 3}
}

// carveOrigin lays out the spawn chunk: one large centered floor room with a
// three-wide corridor lane through the middle of every edge.
func (c *Chunk) carveOrigin() {
	roomSize := c.size - 4
	start := (c.size - roomSize) / 2

	for y := start; y < start+roomSize; y++ {
		for x := start; x < start+roomSize; x++ {
			c.SetTile(x, y, Floor)
		}
	}

	lane := originLane(c.size)
	for _, e := range Edges {
		c.carveOpening(e, lane)
	}
}

// smoothEdges widens every boundary corridor tile by one along the edge and
// one tile inboard so no seam is a single tile wide. Only tiles that were
// corridors before the pass seed the widening.
func (c *Chunk) smoothEdges() {
	var openings [len(Edges)][]int
	for _, e := range Edges {
		openings[e] = c.EdgeOpenings(e)
	}

	for _, e := range Edges {
		for _, pos := range openings[e] {
			for w := -1; w <= 1; w++ {
				p := pos + w
				if p < 0 || p >= c.size {
					continue
				}
				for depth := 0; depth < 2; depth++ {
					x, y := c.edgePoint(e, p, depth)
					c.SetTile(x, y, Corridor)
				}
			}
		}
	}
}
