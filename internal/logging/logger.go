// Package logging configures the process-wide slog logger: JSON output
// to the console, with an optional size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultMaxSize    = 100 * 1024 * 1024 // bytes per log file before rotation
	defaultMaxBackups = 5
)

// ParseLevel converts a string log level to slog.Level. Unknown values
// fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON logger writing to stdout and, when filePath
// is non-empty, to a rotating log file as well.
func NewLogger(level slog.Level, filePath string) (*slog.Logger, error) {
	writers := []io.Writer{os.Stdout}

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, err
		}
		fileWriter, err := NewRotatingFileWriter(filePath, defaultMaxSize, defaultMaxBackups)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fileWriter)
	}

	var writer io.Writer = writers[0]
	if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// Setup creates a logger from the string level and optional file path,
// and installs it as the slog default.
func Setup(level, filePath string) error {
	logger, err := NewLogger(ParseLevel(level), filePath)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
