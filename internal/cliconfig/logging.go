package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns a console logger writing to stderr.
func Logger() zerolog.Logger {
	return NewLogger(os.Stderr, zerolog.InfoLevel)
}

// NewLogger returns a console logger at the given level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
