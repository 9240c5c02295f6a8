// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger instance. It discards output until Init is
// called because stderr belongs to the terminal UI.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var rotator *lumberjack.Logger

// Options configures the file sink.
type Options struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init points the global logger at a size-rotated file. An empty path keeps
// logging disabled.
func Init(opts Options) {
	Close()

	if opts.Path == "" {
		Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	rotator = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    orDefault(opts.MaxSizeMB, 5),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 28),
	}

	Logger = slog.New(slog.NewTextHandler(rotator, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	}))
}

// Close flushes and closes the file sink, if any.
func Close() {
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
