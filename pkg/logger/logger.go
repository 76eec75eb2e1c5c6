// Package logger holds the fichedesk process logger.
//
// serve and seed call Init once with the LOG_LEVEL, LOG_PRETTY and ENV
// settings. Services and stores then take a child from Component so every
// line says which part of the API wrote it. Lines are JSON unless Pretty is
// set.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "fichedesk"

// Options is read from config.Config by the commands.
type Options struct {
	Level  string    // trace, debug, info, warn or error; anything else is info
	Pretty bool      // console output for local runs
	Env    string    // added as "env" when non-empty
	Output io.Writer // os.Stdout when nil
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the process logger from opts. Later calls return the logger
// built by the first one and ignore their options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		l := build(opts)
		root = &l
	}
	return *root
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", serviceName)
	if opts.Env != "" {
		fields = fields.Str("env", opts.Env)
	}
	return fields.Logger()
}

// Get returns the process logger. Calling it before Init is a programming
// error and panics.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		panic("logger: Get() called before Init()")
	}
	return *root
}

// Component tags the process logger with the name of a service or store,
// e.g. "auth", "fiches", "file_store".
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset drops the process logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
