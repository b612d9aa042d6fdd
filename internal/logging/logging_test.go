package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/VoidMesh/dungeon/internal/config"
)

func TestSetupLevels(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"shouting", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Setup(config.LoggingConfig{Level: tt.level, Format: "text", Structured: true}, "")
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFormatter(log.TextFormatter)
		log.SetPrefix("")
	}()

	Setup(config.LoggingConfig{Level: "info", Format: "json", Structured: true}, "dungeon")
	log.Info("chunk window updated", "chunk_x", 3)

	assert.Contains(t, buf.String(), `"chunk_x":3`)
	assert.Contains(t, buf.String(), `"msg":"chunk window updated"`)
}
