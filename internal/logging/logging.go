package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logging collaborator. It is fire-and-forget:
// none of its methods return anything, callers never branch on logging.
type Logger struct {
	z    zerolog.Logger
	file *os.File
}

// New creates a logger that writes to stdout and, if path is non-empty,
// appends to a log file as well.
func New(level, path string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}}

	var file *os.File
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}

	z := zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().Timestamp().Logger()
	return &Logger{z: z, file: file}, nil
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{z: zerolog.Nop()}
}

// Error logs an error together with arbitrary request context.
func (l *Logger) Error(err error, fields map[string]any) {
	l.z.Error().Err(err).Fields(fields).Msg("error")
}

// Event logs a named application event with optional details.
func (l *Logger) Event(name string, fields map[string]any) {
	l.z.Info().Fields(fields).Msg(name)
}

// Request logs one completed provider call: which backend served it, how
// long it took and what the usage counters were.
func (l *Logger) Request(service, model string, turns int, elapsed time.Duration, tokens map[string]any) {
	l.z.Info().
		Str("service", service).
		Str("model", model).
		Int("turns", turns).
		Dur("elapsed", elapsed).
		Fields(tokens).
		Msg("provider request")
}

// Warn logs a non-fatal condition.
func (l *Logger) Warn(msg string, fields map[string]any) {
	l.z.Warn().Fields(fields).Msg(msg)
}

// Close releases the log file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}
