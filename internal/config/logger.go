package config

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the diagnostics logger. Output goes to w, normally
// stderr, so it never mixes with command output.
func NewLogger(cfg LoggingConfig, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "text" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
