// Package logger holds the process-wide zerolog logger used by every
// dockertags package. Console output goes to stderr, next to the progress
// line, so the banners and summary on stdout stay clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance. It is a no-op until Init is called.
var Log = zerolog.Nop()

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Init configures the global logger. level is a zerolog level name
// ("debug", "info", "warn", "error"); an empty level means info.
func Init(level string, format Format) error {
	return InitWriter(os.Stderr, level, format)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string, format Format) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}

	var out io.Writer
	switch format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	case FormatJSON:
		out = w
	default:
		return fmt.Errorf("logger: unknown format %q (valid: console, json)", format)
	}

	Log = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

func parseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}
	return lvl, nil
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event { return Log.Debug() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { return Log.Warn() }
