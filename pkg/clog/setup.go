package clog

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger: a TextHandler for local use and a
// JSON handler otherwise, both wrapped so context attributes are attached.
func NewLogger(w io.Writer, env string, level slog.Level, colored bool) *slog.Logger {
	var handler slog.Handler
	if env == "local" {
		handler = NewTextHandler(w, WithLevel(level), WithColor(colored))
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(NewAttributesHandler(handler))
}
