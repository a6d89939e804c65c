// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel keeps diagnostics out of the way of normal CLI output.
const DefaultLevel = zerolog.WarnLevel

// Setup points the global logger at w as human-readable console output and
// sets the level. An empty or unknown level falls back to DefaultLevel and the
// returned level reports what was applied.
func Setup(w io.Writer, level string) zerolog.Level {
	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	return lvl
}

// ParseLevel maps a level name to a zerolog level, defaulting to DefaultLevel.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}
