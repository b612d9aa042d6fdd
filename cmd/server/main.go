package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/dungeon/internal/api"
	"github.com/VoidMesh/dungeon/internal/config"
	"github.com/VoidMesh/dungeon/internal/db"
	"github.com/VoidMesh/dungeon/internal/logging"
	"github.com/VoidMesh/dungeon/internal/world"
)

func main() {
	cfg := config.Load()

	logging.Setup(cfg.Logging, "dungeon-api")
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	var journal world.Journal
	if cfg.Database.JournalEnabled {
		database, err := db.Open(cfg.Database)
		if err != nil {
			log.Fatal("Failed to initialize database", "error", err)
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			log.Fatal("Failed to run database migrations", "error", err)
		}
		journal = db.NewJournal(database)
	} else {
		log.Info("Chunk journal disabled")
	}

	opts := world.DefaultOptions()
	opts.Chunk = cfg.World.ChunkOptions()
	opts.DefaultSeed = cfg.World.Seed
	opts.MaxWorlds = cfg.Session.MaxWorlds
	opts.IdleTimeout = cfg.Session.IdleTimeout
	worlds := world.NewManager(opts, journal)
	log.Debug("World manager initialized", "chunk_size", opts.Chunk.ChunkSize, "view_distance", opts.Chunk.ViewDistance, "max_worlds", opts.MaxWorlds)

	router := api.SetupRoutes(api.NewHandler(worlds), cfg.Server.WriteTimeout)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting dungeon API server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		runCleanup(gctx, worlds, cfg.Session.CleanupInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", "error", err)
			return err
		}
		log.Debug("Server shutdown completed gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server exited")
}

func runCleanup(ctx context.Context, worlds *world.Manager, interval time.Duration) {
	log.Debug("Starting idle world cleanup ticker", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Background services stopped")
			return

		case now := <-ticker.C:
			start := time.Now()
			removed, err := worlds.CleanupIdle(ctx, now)
			if err != nil {
				log.Error("Failed to cleanup idle worlds", "error", err, "duration", time.Since(start))
				continue
			}
			log.Debug("Idle worlds cleaned up", "removed", removed, "duration", time.Since(start))
		}
	}
}
