package logging

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// teeHandler writes each record to the console handler and then to the
// --log-file handler. Each side filters by its own level.
type teeHandler struct {
	console slog.Handler
	file    slog.Handler
}

func newTeeHandler(console, file slog.Handler) slog.Handler {
	return &teeHandler{console: console, file: file}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

// Handle forwards r to both sides. A failed console write does not keep the
// record out of the log file.
func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var consoleErr, fileErr error
	if h.console.Enabled(ctx, r.Level) {
		consoleErr = h.console.Handle(ctx, r.Clone())
	}
	if h.file.Enabled(ctx, r.Level) {
		if fileErr = h.file.Handle(ctx, r); fileErr != nil {
			fileErr = errors.Wrap(fileErr, "writing log file")
		}
	}
	if consoleErr != nil {
		return consoleErr
	}
	return fileErr
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newTeeHandler(h.console.WithAttrs(attrs), h.file.WithAttrs(attrs))
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return newTeeHandler(h.console.WithGroup(name), h.file.WithGroup(name))
}
