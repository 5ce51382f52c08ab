// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akinalp/sphere/config"
)

// New returns a logger for cfg and installs it as the global zerolog logger,
// so packages can log through zerolog/log with their own component field.
func New(cfg config.LogConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	base := zerolog.New(out).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger().
		Level(ParseLevel(cfg.Level))

	log.Logger = base
	return base
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// give info.
func ParseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
