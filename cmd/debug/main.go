package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/dungeon/cmd/debug/models"
	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/config"
	"github.com/VoidMesh/dungeon/internal/db"
	"github.com/VoidMesh/dungeon/internal/logging"
	"github.com/VoidMesh/dungeon/internal/world"
)

func main() {
	seed := flag.Int64("seed", 0, "World seed (0 picks one at random)")
	size := flag.Int("size", chunk.DefaultChunkSize, "Chunk side length in tiles")
	viewDistance := flag.Int("distance", chunk.DefaultViewDistance, "View distance in chunks")
	dbPath := flag.String("db", "", "Path to a SQLite database for the chunk journal (disabled when empty)")
	startView := flag.String("view", "explorer", "Starting view (menu, explorer, chunks, overview)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// The TUI owns the terminal, so logs only go to a file when DEBUG is set.
	logging.Setup(config.LoggingConfig{Level: *logLevel, Format: "text"}, "dungeon-debug")
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	var journal world.Journal
	if *dbPath != "" {
		database, err := db.Open(config.DatabaseConfig{Path: *dbPath, MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			log.Fatal("Failed to open database", "error", err, "path", *dbPath)
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			log.Fatal("Failed to run database migrations", "error", err)
		}
		journal = db.NewJournal(database)
	}

	opts := world.DefaultOptions()
	opts.Chunk.ChunkSize = *size
	opts.Chunk.ViewDistance = *viewDistance
	opts.MaxWorlds = 2
	worlds := world.NewManager(opts, journal)

	var seedArg *int64
	if *seed != 0 {
		seedArg = seed
	}
	session, err := worlds.Create(context.Background(), seedArg)
	if err != nil {
		log.Fatal("Failed to create world", "error", err)
	}

	app := models.NewApp(worlds, session, *startView)
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting dungeon debug tool", "seed", session.Seed(), "chunk_size", *size, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running debug tool", "error", err)
	}
}
