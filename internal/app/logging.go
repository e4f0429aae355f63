package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/five82/skipper/internal/ui"
)

// newLogger builds the session logger. Warnings and errors always reach
// the TUI status line; with logOutput set every record is also written
// to that file as JSON. The returned cleanup closes the file.
func newLogger(tuiHandler *ui.TUILogHandler, logOutput string) (*slog.Logger, func(), error) {
	if logOutput == "" {
		return slog.New(tuiHandler), func() {}, nil
	}
	fileHandler, closeFile, err := openFileLogHandler(logOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", logOutput, err)
	}
	return slog.New(fanoutHandler{tuiHandler, fileHandler}), closeFile, nil
}

// openFileLogHandler creates a JSON handler writing to path. The file is
// created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { _ = file.Close() }, nil
}

// fanoutHandler sends each record to every sub-handler enabled for its
// level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
