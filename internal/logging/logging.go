package logging

import (
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/dungeon/internal/config"
)

// Setup configures the default charmbracelet logger from cfg.
func Setup(cfg config.LoggingConfig, prefix string) {
	switch cfg.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
		log.Warn("Invalid log level, using info", "level", cfg.Level)
	}

	switch cfg.Format {
	case "json":
		log.SetFormatter(log.JSONFormatter)
	case "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		log.SetFormatter(log.TextFormatter)
	}

	if cfg.Format == "pretty" || !cfg.Structured {
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	}

	if prefix != "" {
		log.SetPrefix("[" + prefix + "] ")
	}
}
