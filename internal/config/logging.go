package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Logger builds the process logger. When File is set the log goes there and
// the returned closer must be called on exit; otherwise it goes to w.
func (l LogConfig) Logger(w io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.levelOrDefault()))); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var closer io.Closer = io.NopCloser(nil)
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch l.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("unknown log format: %s", l.Format)
	}
	return slog.New(h), closer, nil
}

func (l LogConfig) levelOrDefault() string {
	if l.Level == "" {
		return "info"
	}
	return l.Level
}
