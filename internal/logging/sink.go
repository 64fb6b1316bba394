package logging

import (
	"context"
	"log/slog"
)

// sinkHandler gates a destination handler behind a level predicate, so
// each sink can carry its own minimum severity or exact-level match.
type sinkHandler struct {
	next   slog.Handler
	accept func(slog.Level) bool
}

func (h sinkHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.accept(level) && h.next.Enabled(ctx, level)
}

func (h sinkHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return sinkHandler{next: h.next.WithAttrs(attrs), accept: h.accept}
}

func (h sinkHandler) WithGroup(name string) slog.Handler {
	return sinkHandler{next: h.next.WithGroup(name), accept: h.accept}
}

func minLevelSink(next slog.Handler, min slog.Level) slog.Handler {
	return sinkHandler{next: next, accept: func(l slog.Level) bool { return l >= min }}
}

func exactLevelSink(next slog.Handler, only slog.Level) slog.Handler {
	return sinkHandler{next: next, accept: func(l slog.Level) bool { return l == only }}
}

// fanoutHandler dispatches each record to every sink that accepts it.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return fanoutHandler{handlers: next}
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return fanoutHandler{handlers: next}
}
