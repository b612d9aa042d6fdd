package api

import (
	"time"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/spawn"
	"github.com/VoidMesh/dungeon/internal/world"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CreateWorldRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

type CreateWorldResponse struct {
	WorldID   string       `json:"world_id"`
	Seed      int64        `json:"seed"`
	ChunkSize int          `json:"chunk_size"`
	Viewer    world.Viewer `json:"viewer"`
}

type MoveViewerRequest struct {
	TileX *int `json:"tile_x"`
	TileY *int `json:"tile_y"`
}

type MoveViewerResponse struct {
	ChunkX  int `json:"chunk_x"`
	ChunkY  int `json:"chunk_y"`
	Created int `json:"created"`
}

// TileResponse answers a tile query. Tile is omitted when the owning chunk
// is not loaded.
type TileResponse struct {
	TileX    int         `json:"tile_x"`
	TileY    int         `json:"tile_y"`
	Loaded   bool        `json:"loaded"`
	Tile     *chunk.Tile `json:"tile,omitempty"`
	Walkable bool        `json:"walkable"`
}

type ChunkResponse struct {
	ChunkX  int                  `json:"chunk_x"`
	ChunkY  int                  `json:"chunk_y"`
	Size    int                  `json:"size"`
	OriginX int                  `json:"origin_tile_x"`
	OriginY int                  `json:"origin_tile_y"`
	Rows    []string             `json:"rows"`
	Edges   map[chunk.Edge][]int `json:"edges"`
}

type ChunkListResponse struct {
	WorldID string        `json:"world_id"`
	Chunks  []chunk.Coord `json:"chunks"`
}

type SpawnListResponse struct {
	WorldID string         `json:"world_id"`
	Spawns  []spawn.Marker `json:"spawns"`
}

type EventListResponse struct {
	WorldID string             `json:"world_id"`
	Totals  world.EventTotals  `json:"totals"`
	Events  []world.ChunkEvent `json:"events"`
}

// EdgeResponse reports the registry record and the carved openings of one
// chunk edge. The record survives eviction; openings need a loaded chunk.
type EdgeResponse struct {
	ChunkX     int               `json:"chunk_x"`
	ChunkY     int               `json:"chunk_y"`
	Edge       chunk.Edge        `json:"edge"`
	Recorded   bool              `json:"recorded"`
	Connection *chunk.Connection `json:"connection,omitempty"`
	Loaded     bool              `json:"loaded"`
	Openings   []int             `json:"openings"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Worlds    int    `json:"worlds"`
}

func newHealthResponse(worlds int) HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Service:   "dungeon-api",
		Version:   "1.0.0",
		Worlds:    worlds,
	}
}
