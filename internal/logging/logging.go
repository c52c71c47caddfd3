package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a human-readable logger writing to w. verbose enables debug
// output.
func Setup(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return zerolog.New(out).With().Timestamp().Logger().Level(level)
}
