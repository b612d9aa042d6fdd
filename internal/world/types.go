package world

import (
	"context"
	"errors"
	"time"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/spawn"
)

var (
	ErrWorldNotFound = errors.New("world not found")
	ErrTooManyWorlds = errors.New("too many worlds")
)

// EventKind is the lifecycle change a chunk event records.
type EventKind string

const (
	ChunkCreated EventKind = "created"
	ChunkEvicted EventKind = "evicted"
)

// ChunkEvent is one entry of a world's chunk lifecycle journal.
type ChunkEvent struct {
	EventID   string      `json:"event_id,omitempty"`
	WorldID   string      `json:"world_id"`
	Chunk     chunk.Coord `json:"chunk"`
	Kind      EventKind   `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
}

// Journal persists world and chunk lifecycle metadata. Tiles are never
// journaled; a world is always rebuilt from its seed.
type Journal interface {
	WorldCreated(ctx context.Context, worldID string, seed int64, chunkSize int) error
	WorldDeleted(ctx context.Context, worldID string) error
	RecordChunkEvents(ctx context.Context, events []ChunkEvent) error
	ChunkEvents(ctx context.Context, worldID string, limit int) ([]ChunkEvent, error)
	CountChunkEvents(ctx context.Context, worldID string, kind EventKind) (int64, error)
}

// EventTotals counts every journaled event of a world by kind.
type EventTotals struct {
	Created int64 `json:"created"`
	Evicted int64 `json:"evicted"`
}

// Options configure every world a Manager creates.
type Options struct {
	Chunk chunk.Options
	Spawn spawn.Options

	// DefaultSeed is used when Create gets no seed. Zero picks a random seed
	// per world.
	DefaultSeed int64
	MaxWorlds   int
	IdleTimeout time.Duration

	// SpawnSearchRadius bounds the ring search for the viewer's start tile.
	SpawnSearchRadius int
}

func DefaultOptions() Options {
	return Options{
		Chunk:             chunk.DefaultOptions(),
		Spawn:             spawn.DefaultOptions(),
		MaxWorlds:         64,
		IdleTimeout:       30 * time.Minute,
		SpawnSearchRadius: 10,
	}
}

// Viewer is the tile position a session is centered on.
type Viewer struct {
	TileX int         `json:"tile_x"`
	TileY int         `json:"tile_y"`
	Chunk chunk.Coord `json:"chunk"`
}

// MoveResult reports what a viewer move did to the chunk window.
type MoveResult struct {
	Chunk   chunk.Coord `json:"chunk"`
	Created int         `json:"created"`
}

// Summary is a point-in-time view of a session.
type Summary struct {
	WorldID     string    `json:"world_id"`
	Seed        int64     `json:"seed"`
	ChunkSize   int       `json:"chunk_size"`
	Viewer      Viewer    `json:"viewer"`
	Loaded      int       `json:"loaded_chunks"`
	Connections int       `json:"connections"`
	Spawns      int       `json:"spawns"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
}
