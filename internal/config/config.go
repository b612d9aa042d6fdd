package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/VoidMesh/dungeon/internal/chunk"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	World    WorldConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	JournalEnabled  bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

type WorldConfig struct {
	ChunkSize      int
	ViewDistance   int
	UnloadMargin   int
	MinConnections int
	Seed           int64
}

type SessionConfig struct {
	MaxWorlds       int
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./dungeon.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			JournalEnabled:  getEnvBool("JOURNAL_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "text"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
		World: WorldConfig{
			ChunkSize:      getEnvInt("CHUNK_SIZE", chunk.DefaultChunkSize),
			ViewDistance:   getEnvInt("VIEW_DISTANCE", chunk.DefaultViewDistance),
			UnloadMargin:   getEnvInt("UNLOAD_MARGIN", chunk.DefaultUnloadMargin),
			MinConnections: getEnvInt("MIN_CONNECTIONS", chunk.DefaultMinConnections),
			Seed:           getEnvInt64("WORLD_SEED", 0),
		},
		Session: SessionConfig{
			MaxWorlds:       getEnvInt("MAX_WORLDS", 64),
			IdleTimeout:     getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
			CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", 5*time.Minute),
		},
	}
}

// Validate rejects settings the generators cannot work with.
func (c *Config) Validate() error {
	w := c.World
	if w.ChunkSize < chunk.MinChunkSize {
		return fmt.Errorf("%w: CHUNK_SIZE must be at least %d, got %d", ErrInvalidConfig, chunk.MinChunkSize, w.ChunkSize)
	}
	if w.ViewDistance < 0 {
		return fmt.Errorf("%w: VIEW_DISTANCE must not be negative, got %d", ErrInvalidConfig, w.ViewDistance)
	}
	if w.UnloadMargin < 0 {
		return fmt.Errorf("%w: UNLOAD_MARGIN must not be negative, got %d", ErrInvalidConfig, w.UnloadMargin)
	}
	if w.MinConnections < 0 || w.MinConnections > len(chunk.Edges) {
		return fmt.Errorf("%w: MIN_CONNECTIONS must be between 0 and %d, got %d", ErrInvalidConfig, len(chunk.Edges), w.MinConnections)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("%w: CLEANUP_INTERVAL must be positive, got %s", ErrInvalidConfig, c.Session.CleanupInterval)
	}
	return nil
}

// ChunkOptions converts the world settings for chunk.NewManager.
func (w WorldConfig) ChunkOptions() chunk.Options {
	return chunk.Options{
		ChunkSize:      w.ChunkSize,
		ViewDistance:   w.ViewDistance,
		UnloadMargin:   w.UnloadMargin,
		MinConnections: w.MinConnections,
	}
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
