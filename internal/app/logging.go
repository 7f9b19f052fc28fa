package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the application logger: human-readable console output on
// stderr, structured fields preserved.
func NewLogger(level zerolog.Level) zerolog.Logger {
	return NewLoggerTo(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// NewLoggerTo builds a logger writing to w; tools use it to capture logs.
func NewLoggerTo(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
