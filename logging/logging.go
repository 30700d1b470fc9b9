// Package logging configures the global zerolog logger for the binaries.
//
// The terminal binary owns stdout, so it logs to a rotating file and only in debug mode.
// The server logs to stderr through a console writer.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// LogFileName is the active log file inside the log directory
	LogFileName = "gridpath.log"

	// MaxLogSize triggers rotation of the active file at startup
	MaxLogSize = 10 * 1024 * 1024
)

// Options selects the logging sink
type Options struct {
	Dir   string
	Level string // zerolog level name; empty means info

	// Debug enables file logging; ignored when Console is set
	Debug bool

	// Console writes human-readable lines to stderr instead of a file
	Console bool
}

// Setup replaces the global logger according to opts
// Returns the file to close on exit, or nil when nothing was opened
func Setup(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lvl, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = lvl
	}

	if opts.Console {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
		stdlog.SetOutput(log.Logger)
		return nil, nil
	}

	if !opts.Debug {
		log.Logger = zerolog.Nop()
		stdlog.SetOutput(io.Discard)
		return nil, nil
	}

	f, err := openLogFile(opts.Dir)
	if err != nil {
		return nil, err
	}
	if level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
	return f, nil
}

// openLogFile creates dir, rotates an oversized log and opens the active file for append
func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("gridpath-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
