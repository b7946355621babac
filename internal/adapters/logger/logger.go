// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
	file     *lumberjack.Logger
}

// New creates a new Logger instance.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches the console output between JSON and text.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// SetLogFile tees every entry as JSON into a size-rotated file. An empty path disables the file.
func (l *Logger) SetLogFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to close log file"), "path", l.file.Filename)
		}
		l.file = nil
	}
	if path != "" {
		l.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
	}
	l.rebuild()
	return nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	return l.SetLogFile("")
}

// rebuild must be called with l.mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var console slog.Handler
	if l.jsonMode {
		console = slog.NewJSONHandler(l.output, opts)
	} else {
		console = slog.NewTextHandler(l.output, opts)
	}
	if l.file == nil {
		l.logger = slog.New(console)
		return
	}
	l.logger = slog.New(fanout{console, slog.NewJSONHandler(l.file, opts)})
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message with the zerr metadata of the whole chain as attributes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", append([]any{"error", err}, metadataAttrs(err)...)...)
}

// ErrorMetadata collects the zerr metadata along an error chain. Outer values win.
func ErrorMetadata(err error) map[string]any {
	meta := make(map[string]any)
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		var zErr *zerr.Error
		if !errors.As(cur, &zErr) {
			break
		}
		for k, v := range zErr.Metadata() {
			if _, ok := meta[k]; !ok {
				meta[k] = v
			}
		}
		cur = zErr
	}
	return meta
}

func metadataAttrs(err error) []any {
	meta := ErrorMetadata(err)
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, meta[k]))
	}
	return attrs
}

// fanout dispatches each record to every handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
