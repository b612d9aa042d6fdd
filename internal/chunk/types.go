package chunk

import (
	"fmt"
)

const (
	// DefaultChunkSize is the side length of a chunk in tiles.
	DefaultChunkSize = 32

	// DefaultViewDistance is the number of chunks kept generated on each
	// side of the viewer's chunk.
	DefaultViewDistance = 1

	// DefaultUnloadMargin is how many chunks beyond the view distance a
	// chunk may drift before it is evicted.
	DefaultUnloadMargin = 2

	// DefaultMinConnections is the minimum number of open edges on every
	// non-origin chunk.
	DefaultMinConnections = 2

	// MinChunkSize is the smallest side length both generators can fill.
	MinChunkSize = 16
)

// Tile is the terrain kind of a single cell.
type Tile uint8

const (
	Empty Tile = iota
	Floor
	Wall
	Door // reserved, neither generator places doors
	Corridor
)

var tileNames = [...]string{
	Empty:    "empty",
	Floor:    "floor",
	Wall:     "wall",
	Door:     "door",
	Corridor: "corridor",
}

func (t Tile) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// MarshalText renders the tile by name so JSON payloads stay readable.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Walkable reports whether a viewer may stand on the tile.
func (t Tile) Walkable() bool {
	switch t {
	case Floor, Corridor, Door:
		return true
	default:
		return false
	}
}

// Glyph is the single-character debug rendering of the tile.
func (t Tile) Glyph() byte {
	switch t {
	case Floor:
		return '.'
	case Wall:
		return '#'
	case Door:
		return '+'
	case Corridor:
		return '='
	default:
		return ' '
	}
}

// Coord addresses a chunk in the infinite chunk grid.
type Coord struct {
	X int `json:"chunk_x"`
	Y int `json:"chunk_y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// IsOrigin reports whether c is the spawn chunk (0,0).
func (c Coord) IsOrigin() bool {
	return c.X == 0 && c.Y == 0
}

// Neighbor returns the chunk sharing edge e with c.
func (c Coord) Neighbor(e Edge) Coord {
	switch e {
	case North:
		return Coord{X: c.X, Y: c.Y - 1}
	case South:
		return Coord{X: c.X, Y: c.Y + 1}
	case East:
		return Coord{X: c.X + 1, Y: c.Y}
	case West:
		return Coord{X: c.X - 1, Y: c.Y}
	}
	return c
}

// TileOrigin returns the absolute tile coordinate of the chunk's local (0,0).
func (c Coord) TileOrigin(size int) (int, int) {
	return c.X * size, c.Y * size
}

// CoordOf splits an absolute tile coordinate into the chunk that holds it
// and the local position inside that chunk. Local values are never negative.
func CoordOf(tileX, tileY, size int) (Coord, int, int) {
	return Coord{X: floorDiv(tileX, size), Y: floorDiv(tileY, size)}, mod(tileX, size), mod(tileY, size)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Edge is one of the four sides of a chunk.
type Edge uint8

const (
	North Edge = iota
	South
	East
	West
)

// Edges lists the four edges in negotiation order.
var Edges = [4]Edge{North, South, East, West}

var edgeNames = [...]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Edge) UnmarshalText(text []byte) error {
	parsed, err := ParseEdge(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Opposite returns the edge a neighbor uses for the shared boundary.
func (e Edge) Opposite() Edge {
	switch e {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// ParseEdge is the inverse of Edge.String.
func ParseEdge(s string) (Edge, error) {
	for i, name := range edgeNames {
		if name == s {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// Connection records an opening carved into one edge of one chunk.
type Connection struct {
	Position int `json:"position"` // along the edge, 0..size-1
	Width    int `json:"width"`
}

// Room is a rectangular carve target, local to the chunk being generated.
type Room struct {
	X, Y          int
	Width, Height int
}

// Center returns the room's center tile.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// overlaps reports whether r and o overlap once each is grown by spacing.
func (r Room) overlaps(o Room, spacing int) bool {
	return r.X < o.X+o.Width+spacing &&
		r.X+r.Width+spacing > o.X &&
		r.Y < o.Y+o.Height+spacing &&
		r.Y+r.Height+spacing > o.Y
}
