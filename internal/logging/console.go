package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorYellow  = "\033[33m"
	colorGreen   = "\033[32m"
	colorMagenta = "\033[35m"
	colorBlue    = "\033[34m"
)

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case level >= LevelHTTP:
		return colorMagenta
	default:
		return colorBlue
	}
}

// consoleHandler renders human-readable, colorized lines:
//
//	2026-01-02 15:04:05 [INFO] server started port=3003
type consoleHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
}

func newConsoleHandler(out io.Writer) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, out: out}
}

func (h *consoleHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteString(" ")
	b.WriteString(levelColor(r.Level))
	b.WriteString("[")
	b.WriteString(levelName(r.Level))
	b.WriteString("]")
	b.WriteString(colorReset)
	b.WriteString(" ")
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		writeAttr(&b, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, attr)
		return true
	})
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup is a no-op; the logger never emits grouped attributes.
func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

func writeAttr(b *strings.Builder, attr slog.Attr) {
	fmt.Fprintf(b, " %s=%v", attr.Key, attr.Value.Any())
}
