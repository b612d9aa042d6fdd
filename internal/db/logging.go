package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingQueries wraps the generated Queries struct to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// CreateWorld with logging
func (lq *LoggingQueries) CreateWorld(ctx context.Context, arg CreateWorldParams) (World, error) {
	start := time.Now()
	log.Debug("Executing CreateWorld", "world_id", arg.WorldID, "seed", arg.Seed, "chunk_size", arg.ChunkSize)

	result, err := lq.Queries.CreateWorld(ctx, arg)
	lq.logQuery("CreateWorld", start, err, arg)
	return result, err
}

// GetWorld with logging
func (lq *LoggingQueries) GetWorld(ctx context.Context, worldID string) (World, error) {
	start := time.Now()
	log.Debug("Executing GetWorld", "world_id", worldID)

	result, err := lq.Queries.GetWorld(ctx, worldID)
	lq.logQuery("GetWorld", start, err, worldID)

	if err == nil {
		log.Debug("GetWorld result", "world_id", result.WorldID, "seed", result.Seed)
	}

	return result, err
}

// DeleteWorld with logging
func (lq *LoggingQueries) DeleteWorld(ctx context.Context, worldID string) error {
	start := time.Now()
	log.Debug("Executing DeleteWorld", "world_id", worldID)

	err := lq.Queries.DeleteWorld(ctx, worldID)
	lq.logQuery("DeleteWorld", start, err, worldID)
	return err
}

// InsertChunkEvent with logging
func (lq *LoggingQueries) InsertChunkEvent(ctx context.Context, arg InsertChunkEventParams) error {
	start := time.Now()
	log.Debug("Executing InsertChunkEvent",
		"world_id", arg.WorldID,
		"chunk_x", arg.ChunkX,
		"chunk_y", arg.ChunkY,
		"kind", arg.Kind,
	)

	err := lq.Queries.InsertChunkEvent(ctx, arg)
	lq.logQuery("InsertChunkEvent", start, err, arg)
	return err
}

// ListChunkEvents with logging
func (lq *LoggingQueries) ListChunkEvents(ctx context.Context, arg ListChunkEventsParams) ([]ChunkEvent, error) {
	start := time.Now()
	log.Debug("Executing ListChunkEvents", "world_id", arg.WorldID, "limit", arg.Limit)

	result, err := lq.Queries.ListChunkEvents(ctx, arg)
	lq.logQuery("ListChunkEvents", start, err, arg)

	if err == nil {
		log.Debug("ListChunkEvents result", "event_count", len(result), "world_id", arg.WorldID)
	}

	return result, err
}

// CountChunkEvents with logging
func (lq *LoggingQueries) CountChunkEvents(ctx context.Context, arg CountChunkEventsParams) (int64, error) {
	start := time.Now()
	log.Debug("Executing CountChunkEvents", "world_id", arg.WorldID, "kind", arg.Kind)

	result, err := lq.Queries.CountChunkEvents(ctx, arg)
	lq.logQuery("CountChunkEvents", start, err, arg)

	if err == nil {
		log.Debug("CountChunkEvents result", "count", result)
	}

	return result, err
}

// DeleteChunkEvents with logging
func (lq *LoggingQueries) DeleteChunkEvents(ctx context.Context, worldID string) error {
	start := time.Now()
	log.Debug("Executing DeleteChunkEvents", "world_id", worldID)

	err := lq.Queries.DeleteChunkEvents(ctx, worldID)
	lq.logQuery("DeleteChunkEvents", start, err, worldID)
	return err
}
