package chunk

// Generator populates a freshly allocated, wall-filled chunk. Implementations
// must finish the whole grid before returning.
type Generator interface {
	Generate(c *Chunk)
}

// Registry is the connection bookkeeping a seeded generator negotiates with.
// The stream Manager is the only production implementation.
type Registry interface {
	RecordConnection(coord Coord, edge Edge, conn Connection)
	Connection(coord Coord, edge Edge) (Connection, bool)

	// AdjacentConnection returns what the neighbor across edge committed to
	// on its own, opposite edge.
	AdjacentConnection(coord Coord, edge Edge) (Connection, bool)

	// Exists reports whether the chunk at coord is currently materialized.
	Exists(coord Coord) bool
}

// carveH digs a horizontal corridor on row y between x1 and x2 inclusive.
func carveH(c *Chunk, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.SetTile(x, y, Corridor)
	}
}

// carveV digs a vertical corridor on column x between y1 and y2 inclusive.
func carveV(c *Chunk, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.SetTile(x, y, Corridor)
	}
}

// carveL digs an L-shaped corridor from (x1,y1) to (x2,y2), bending at
// (x2,y1) when horizontalFirst and at (x1,y2) otherwise.
func carveL(c *Chunk, x1, y1, x2, y2 int, horizontalFirst bool) {
	if horizontalFirst {
		carveH(c, x1, x2, y1)
		carveV(c, y1, y2, x2)
		return
	}
	carveV(c, y1, y2, x1)
	carveH(c, x1, x2, y2)
}

// carveRoom fills the room rectangle with floor.
func carveRoom(c *Chunk, r Room) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			c.SetTile(x, y, Floor)
		}
	}
}
