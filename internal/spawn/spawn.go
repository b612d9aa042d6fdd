package spawn

import (
	"math"
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/dungeon/internal/chunk"
)

// Kind names what a marker stands for.
type Kind string

const (
	BabySlime Kind = "baby_slime"
	BabyGhost Kind = "baby_ghost"
	Bottle    Kind = "bottle"
	Teddy     Kind = "teddy"
)

var monsterKinds = []Kind{BabySlime, BabyGhost}

// Marker is a planned spawn at an absolute tile.
type Marker struct {
	Kind  Kind        `json:"kind"`
	TileX int         `json:"tile_x"`
	TileY int         `json:"tile_y"`
	Chunk chunk.Coord `json:"chunk"`
}

// Range is an inclusive attempt count range.
type Range struct {
	Min int
	Max int
}

// Options control how many placements are attempted per chunk.
type Options struct {
	Monsters Range
	Items    Range

	// TeddyChance is the share of item placements that are teddies rather
	// than bottles.
	TeddyChance float64

	// DensityScale is how many chunks one noise period spans.
	DensityScale float64
}

func DefaultOptions() Options {
	return Options{
		Monsters:     Range{Min: 1, Max: 3},
		Items:        Range{Min: 1, Max: 3},
		TeddyChance:  0.2,
		DensityScale: 4.5,
	}
}

// Source is the part of a chunk manager the spawner needs.
type Source interface {
	Seed() int64
	ChunkSize() int
	Passable(tileX, tileY int) bool
	OnChunkCreated(fn func(chunk.Coord))
	OnChunkEvicted(fn func(chunk.Coord))
}

// Spawner plans markers for each chunk a manager creates and forgets them
// when the chunk is evicted. It only ever reads tiles.
//
// Spawner has no locking of its own; it runs inside the manager's
// notifications and shares the manager's serialization.
type Spawner struct {
	src     Source
	opts    Options
	density *perlin.Perlin
	markers map[chunk.Coord][]Marker
}

// New creates a spawner and subscribes it to src.
func New(src Source, opts Options) *Spawner {
	if opts.DensityScale <= 0 {
		opts.DensityScale = DefaultOptions().DensityScale
	}
	s := &Spawner{
		src:     src,
		opts:    opts,
		density: perlin.NewPerlin(2, 2, 3, src.Seed()),
		markers: make(map[chunk.Coord][]Marker),
	}
	src.OnChunkCreated(s.Populate)
	src.OnChunkEvicted(s.Drop)
	return s
}

// Density returns the spawn density of the chunk in [0, 1).
func (s *Spawner) Density(coord chunk.Coord) float64 {
	n := s.density.Noise2D(float64(coord.X)/s.opts.DensityScale, float64(coord.Y)/s.opts.DensityScale)
	d := (n + 1) / 2
	return math.Min(math.Max(d, 0), math.Nextafter(1, 0))
}

// Populate rolls the markers for a freshly created chunk. The origin chunk
// is left empty.
func (s *Spawner) Populate(coord chunk.Coord) {
	if coord.IsOrigin() {
		return
	}

	rng := rand.New(rand.NewSource(chunk.DeriveSeed(s.src.Seed(), coord) ^ 0x5bd1e995))
	density := s.Density(coord)

	var out []Marker
	for i, n := 0, s.attempts(rng, s.opts.Monsters, density); i < n; i++ {
		kind := monsterKinds[rng.Intn(len(monsterKinds))]
		if m, ok := s.place(rng, coord, kind); ok {
			out = append(out, m)
		}
	}
	for i, n := 0, s.attempts(rng, s.opts.Items, density); i < n; i++ {
		kind := Bottle
		if rng.Float64() < s.opts.TeddyChance {
			kind = Teddy
		}
		if m, ok := s.place(rng, coord, kind); ok {
			out = append(out, m)
		}
	}

	if len(out) > 0 {
		s.markers[coord] = out
	}
	log.Debug("populated chunk", "chunk_x", coord.X, "chunk_y", coord.Y, "density", density, "markers", len(out))
}

// attempts blends the chunk density with a fresh roll so dense regions
// lean toward r.Max without pinning every chunk there.
func (s *Spawner) attempts(rng *rand.Rand, r Range, density float64) int {
	if r.Max <= r.Min {
		return r.Min
	}
	mix := (density + rng.Float64()) / 2
	n := r.Min + int(mix*float64(r.Max-r.Min+1))
	if n > r.Max {
		n = r.Max
	}
	return n
}

func (s *Spawner) place(rng *rand.Rand, coord chunk.Coord, kind Kind) (Marker, bool) {
	size := s.src.ChunkSize()
	ox, oy := coord.TileOrigin(size)
	x, y := ox+rng.Intn(size), oy+rng.Intn(size)
	if !s.src.Passable(x, y) {
		return Marker{}, false
	}
	return Marker{Kind: kind, TileX: x, TileY: y, Chunk: coord}, true
}

// Drop forgets the markers of an evicted chunk.
func (s *Spawner) Drop(coord chunk.Coord) {
	delete(s.markers, coord)
}

// In returns the markers planned for coord.
func (s *Spawner) In(coord chunk.Coord) []Marker {
	return append([]Marker(nil), s.markers[coord]...)
}

// Markers returns every live marker, grouped by chunk in row order.
func (s *Spawner) Markers() []Marker {
	coords := make([]chunk.Coord, 0, len(s.markers))
	for c := range s.markers {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	var out []Marker
	for _, c := range coords {
		out = append(out, s.markers[c]...)
	}
	return out
}

// Len returns the number of live markers.
func (s *Spawner) Len() int {
	n := 0
	for _, ms := range s.markers {
		n += len(ms)
	}
	return n
}
