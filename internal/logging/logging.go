// Package logging provides the interpreter's ambient structured logger: a
// package-level slog.Logger whose level is adjustable at runtime, driven
// by the `debug` primitive the same way the original specimen's
// set_loglevel adjusted Python's root logger level.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Log is the interpreter's shared structured logger. The evaluator logs
// symbol lookups and special-form dispatch at Debug, builtin invocation
// at Info.
var Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

// names mirrors the five level names the original interpreter's
// set_loglevel accepted. slog has no distinct "critical" level, so
// CRITICAL maps onto LevelError, same as its closest Go equivalent.
var names = map[string]slog.Level{
	"CRITICAL": slog.LevelError,
	"ERROR":    slog.LevelError,
	"WARNING":  slog.LevelWarn,
	"INFO":     slog.LevelInfo,
	"DEBUG":    slog.LevelDebug,
}

// SetLevel adjusts the logger's level by name, rejecting anything that
// isn't one of CRITICAL/ERROR/WARNING/INFO/DEBUG.
func SetLevel(name string) bool {
	lvl, ok := names[strings.ToUpper(name)]
	if !ok {
		return false
	}
	level.Set(lvl)

	return true
}
