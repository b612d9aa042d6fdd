package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/world"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

type contextKey string

const sessionContextKey contextKey = "session"

type Handler struct {
	worlds *world.Manager
}

func NewHandler(worlds *world.Manager) *Handler {
	return &Handler{
		worlds: worlds,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, newHealthResponse(h.worlds.Len()))
}

// WorldContext resolves {worldId} and stores the session on the request.
func (h *Handler) WorldContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "worldId")
		s, err := h.worlds.Get(id)
		if err != nil {
			log.Debug("world lookup failed", "world_id", id, "error", err)
			h.renderError(w, r, http.StatusNotFound, "world not found", nil)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *world.Session {
	s, _ := r.Context().Value(sessionContextKey).(*world.Session)
	return s
}

func (h *Handler) CreateWorld(w http.ResponseWriter, r *http.Request) {
	var req CreateWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	s, err := h.worlds.Create(r.Context(), req.Seed)
	if err != nil {
		if errors.Is(err, world.ErrTooManyWorlds) {
			h.renderError(w, r, http.StatusServiceUnavailable, "too many worlds", nil)
			return
		}
		log.Error("failed to create world", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to create world", err)
		return
	}

	summary := s.Snapshot()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreateWorldResponse{
		WorldID:   summary.WorldID,
		Seed:      summary.Seed,
		ChunkSize: summary.ChunkSize,
		Viewer:    summary.Viewer,
	})
}

func (h *Handler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"worlds": h.worlds.List(),
	})
}

func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, sessionFrom(r).Snapshot())
}

func (h *Handler) DeleteWorld(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	if err := h.worlds.Delete(r.Context(), s.ID()); err != nil {
		if errors.Is(err, world.ErrWorldNotFound) {
			h.renderError(w, r, http.StatusNotFound, "world not found", nil)
			return
		}
		log.Error("failed to delete world", "error", err, "world_id", s.ID())
		h.renderError(w, r, http.StatusInternalServerError, "failed to delete world", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MoveViewer(w http.ResponseWriter, r *http.Request) {
	var req MoveViewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.TileX == nil || req.TileY == nil {
		h.renderError(w, r, http.StatusBadRequest, "tile_x and tile_y are required", nil)
		return
	}

	res := sessionFrom(r).Move(r.Context(), *req.TileX, *req.TileY)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MoveViewerResponse{
		ChunkX:  res.Chunk.X,
		ChunkY:  res.Chunk.Y,
		Created: res.Created,
	})
}

func (h *Handler) GetTile(w http.ResponseWriter, r *http.Request) {
	x, y, ok := h.coordParams(w, r, "tile")
	if !ok {
		return
	}

	resp := TileResponse{TileX: x, TileY: y}
	if tile, loaded := sessionFrom(r).TileAt(x, y); loaded {
		resp.Loaded = true
		resp.Tile = &tile
		resp.Walkable = tile.Walkable()
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) ListChunks(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ChunkListResponse{WorldID: s.ID(), Chunks: s.Loaded()})
}

func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	x, y, ok := h.coordParams(w, r, "chunk")
	if !ok {
		return
	}

	c, loaded := sessionFrom(r).Chunk(chunk.Coord{X: x, Y: y})
	if !loaded {
		h.renderError(w, r, http.StatusNotFound, "chunk not loaded", nil)
		return
	}

	edges := make(map[chunk.Edge][]int, len(chunk.Edges))
	for _, e := range chunk.Edges {
		edges[e] = c.EdgeOpenings(e)
	}
	ox, oy := c.Coord().TileOrigin(c.Size())

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ChunkResponse{
		ChunkX:  x,
		ChunkY:  y,
		Size:    c.Size(),
		OriginX: ox,
		OriginY: oy,
		Rows:    c.Rows(),
		Edges:   edges,
	})
}

func (h *Handler) GetEdge(w http.ResponseWriter, r *http.Request) {
	x, y, ok := h.coordParams(w, r, "chunk")
	if !ok {
		return
	}
	edge, err := chunk.ParseEdge(chi.URLParam(r, "edge"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "edge must be north, south, east or west", nil)
		return
	}

	s := sessionFrom(r)
	coord := chunk.Coord{X: x, Y: y}
	resp := EdgeResponse{ChunkX: x, ChunkY: y, Edge: edge, Openings: []int{}}

	if conn, recorded := s.Connection(coord, edge); recorded {
		resp.Recorded = true
		resp.Connection = &conn
	}
	if c, loaded := s.Chunk(coord); loaded {
		resp.Loaded = true
		if openings := c.EdgeOpenings(edge); openings != nil {
			resp.Openings = openings
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) ListSpawns(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, SpawnListResponse{WorldID: s.ID(), Spawns: s.Spawns()})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = min(n, maxEventLimit)
	}

	s := sessionFrom(r)
	events, err := s.Events(r.Context(), limit)
	if err != nil {
		log.Error("failed to list chunk events", "error", err, "world_id", s.ID())
		h.renderError(w, r, http.StatusInternalServerError, "failed to list events", err)
		return
	}
	if events == nil {
		events = []world.ChunkEvent{}
	}

	totals, err := s.EventTotals(r.Context())
	if err != nil {
		log.Error("failed to count chunk events", "error", err, "world_id", s.ID())
		h.renderError(w, r, http.StatusInternalServerError, "failed to count events", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, EventListResponse{WorldID: s.ID(), Totals: totals, Events: events})
}

func (h *Handler) coordParams(w http.ResponseWriter, r *http.Request, what string) (int, int, bool) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid "+what+" x coordinate", err)
		return 0, 0, false
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid "+what+" y coordinate", err)
		return 0, 0, false
	}
	return x, y, true
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
