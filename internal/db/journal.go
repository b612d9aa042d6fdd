package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/world"
)

var _ world.Journal = (*Journal)(nil)

// Journal records world and chunk lifecycle events in SQLite.
type Journal struct {
	db      *sql.DB
	queries *LoggingQueries
}

func NewJournal(database *sql.DB) *Journal {
	return &Journal{
		db:      database,
		queries: NewLoggingQueries(database),
	}
}

func (j *Journal) WorldCreated(ctx context.Context, worldID string, seed int64, chunkSize int) error {
	_, err := j.queries.CreateWorld(ctx, CreateWorldParams{
		WorldID:   worldID,
		Seed:      seed,
		ChunkSize: int64(chunkSize),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to create world: %w", err)
	}
	return nil
}

// WorldDeleted removes a world and every event recorded for it.
func (j *Journal) WorldDeleted(ctx context.Context, worldID string) error {
	return j.inTx(ctx, func(q *LoggingQueries) error {
		if err := q.DeleteChunkEvents(ctx, worldID); err != nil {
			return fmt.Errorf("failed to delete chunk events: %w", err)
		}
		if err := q.DeleteWorld(ctx, worldID); err != nil {
			return fmt.Errorf("failed to delete world: %w", err)
		}
		return nil
	})
}

// RecordChunkEvents stores a batch of events atomically.
func (j *Journal) RecordChunkEvents(ctx context.Context, events []world.ChunkEvent) error {
	if len(events) == 0 {
		return nil
	}
	return j.inTx(ctx, func(q *LoggingQueries) error {
		for _, e := range events {
			id := e.EventID
			if id == "" {
				id = uuid.NewString()
			}
			err := q.InsertChunkEvent(ctx, InsertChunkEventParams{
				EventID:   id,
				WorldID:   e.WorldID,
				ChunkX:    int64(e.Chunk.X),
				ChunkY:    int64(e.Chunk.Y),
				Kind:      string(e.Kind),
				CreatedAt: e.CreatedAt.UTC(),
			})
			if err != nil {
				return fmt.Errorf("failed to insert chunk event: %w", err)
			}
		}
		return nil
	})
}

// ChunkEvents lists up to limit events of a world, newest first.
func (j *Journal) ChunkEvents(ctx context.Context, worldID string, limit int) ([]world.ChunkEvent, error) {
	rows, err := j.queries.ListChunkEvents(ctx, ListChunkEventsParams{WorldID: worldID, Limit: int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("failed to list chunk events: %w", err)
	}

	out := make([]world.ChunkEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, world.ChunkEvent{
			EventID:   r.EventID,
			WorldID:   r.WorldID,
			Chunk:     chunk.Coord{X: int(r.ChunkX), Y: int(r.ChunkY)},
			Kind:      world.EventKind(r.Kind),
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// CountChunkEvents counts the events of one kind for a world.
func (j *Journal) CountChunkEvents(ctx context.Context, worldID string, kind world.EventKind) (int64, error) {
	n, err := j.queries.CountChunkEvents(ctx, CountChunkEventsParams{WorldID: worldID, Kind: string(kind)})
	if err != nil {
		return 0, fmt.Errorf("failed to count chunk events: %w", err)
	}
	return n, nil
}

// lookupWorld finds a journaled world. ok is false when it was never
// recorded or has been deleted.
func (j *Journal) lookupWorld(ctx context.Context, worldID string) (World, bool, error) {
	w, err := j.queries.GetWorld(ctx, worldID)
	if errors.Is(err, sql.ErrNoRows) {
		return World{}, false, nil
	}
	if err != nil {
		return World{}, false, fmt.Errorf("failed to get world: %w", err)
	}
	return w, true, nil
}

func (j *Journal) inTx(ctx context.Context, fn func(q *LoggingQueries) error) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(j.queries.WithTx(tx)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
