package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Format selects the record encoding of a log output
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Filter decides whether a record is emitted. Returning false drops it from every output.
type Filter func(ctx context.Context, r slog.Record) bool

// Options configures a logger with a stdout output and an optional file output
type Options struct {
	Name      string
	Level     LogLevel
	Output    io.Writer
	Format    Format
	FilePath  string
	FileLevel LogLevel
	Filters   []Filter
}

// Configure builds a logger from opts and installs it as the package default.
// The logger level is the most verbose of the output levels. Close the returned
// logger to release the log file.
func Configure(opts Options) (*Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlers := []slog.Handler{newHandler(out, opts.Format, opts.Level)}
	level := opts.Level

	var closers []io.Closer
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closers = append(closers, f)
		handlers = append(handlers, newHandler(f, opts.Format, opts.FileLevel))
		level = min(level, opts.FileLevel)
	}

	logger := slog.New(&fanoutHandler{handlers: handlers, filters: opts.Filters})
	if opts.Name != "" {
		logger = logger.With("logger", opts.Name)
	}

	l := &Logger{logger: logger, level: level, closers: closers}
	SetDefault(l)
	return l, nil
}

func newHandler(w io.Writer, format Format, level LogLevel) slog.Handler {
	opts := &slog.HandlerOptions{Level: level.toSlogLevel()}
	if format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// fanoutHandler sends each record to every handler whose level admits it
type fanoutHandler struct {
	handlers []slog.Handler
	filters  []Filter
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, f := range h.filters {
		if !f(ctx, r) {
			return nil
		}
	}
	var errs []error
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, r.Level) {
			errs = append(errs, hh.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next, filters: h.filters}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return &fanoutHandler{handlers: next, filters: h.filters}
}
