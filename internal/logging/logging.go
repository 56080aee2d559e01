// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var level = new(slog.LevelVar)

// Init installs a text handler writing to w as the default logger.
func Init(w io.Writer, lvl slog.Level) {
	level.Set(lvl)
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// SetLevel changes the level of the installed handler.
func SetLevel(lvl slog.Level) { level.Set(lvl) }

// Level reports the current level.
func Level() slog.Level { return level.Level() }

// ParseLevel maps a config value to a slog level. An empty value is warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}
