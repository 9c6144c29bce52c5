package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Sink is one destination of a MultiHandler. Records below Level never
// reach Handler; a nil Level defers entirely to Handler.Enabled.
type Sink struct {
	Name    string
	Handler slog.Handler
	Level   slog.Leveler
}

func (s Sink) enabled(ctx context.Context, level slog.Level) bool {
	if s.Level != nil && level < s.Level.Level() {
		return false
	}

	return s.Handler.Enabled(ctx, level)
}

// MultiHandler fans records out to several sinks, each with its own level.
// The gateway pairs the terminal with the rolling JSON file, which can run
// at trace to keep every outbound Ask Kodiak request line while the
// terminal stays at info.
type MultiHandler struct {
	sinks []Sink
}

// NewMultiHandler returns a handler writing to every sink.
func NewMultiHandler(sinks ...Sink) *MultiHandler {
	return &MultiHandler{sinks: sinks}
}

// Enabled reports whether any sink takes records at level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes r to every sink that takes its level. A failing sink does
// not stop the others; all failures are returned, labelled by sink.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range h.sinks {
		if !s.enabled(ctx, r.Level) {
			continue
		}

		if err := s.Handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, fmt.Errorf("%s sink: %w", s.Name, err))
		}
	}

	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]Sink, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = Sink{Name: s.Name, Handler: fn(s.Handler), Level: s.Level}
	}

	return &MultiHandler{sinks: sinks}
}
