// Package logging builds the structured diagnostics logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/thirukguru/docdb-multiscan/model"
)

// New returns a logger writing to w in the given format (text or json) at
// the given level (debug, info, warn or error).
func New(format, level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "", "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("%w: unsupported --log-level %q", model.ErrConfiguration, level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: unsupported --log-format %q", model.ErrConfiguration, format)
	}

	return slog.New(h), nil
}
