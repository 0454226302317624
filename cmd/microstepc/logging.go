package main

import (
	"log/slog"
	"os"
)

// newLogger follows the pack's lexer/parser idiom: a text handler on
// stderr, quiet by default, with timestamp and level stripped so normal
// output stays a clean two-column log; -d/--debug restores both and lowers
// the level.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if debug {
				return a
			}
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
