// Package logging provides the leveled logging service for the API.
//
// A Logger is constructed once at startup and passed to the components
// that need it; there is no package-level instance. The console sink is
// always active. Outside managed runtimes three rotating file sinks are
// added: a combined log (info and above), an error-only log, and an
// http-only request log, each with its own retention window.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envDevelopment = "development"
	envProduction  = "production"

	combinedLogFile = "combined.log"
	errorLogFile    = "error.log"
	httpLogFile     = "http.log"

	maxFileSizeMB     = 10
	combinedRetention = 14 // days
	errorRetention    = 30
	httpRetention     = 7
)

// Options configures a Logger. The zero value yields a console-only
// logger at info verbosity.
type Options struct {
	// Environment selects verbosity: "development" emits debug and
	// above, anything else info and above.
	Environment string

	// ManagedRuntime suppresses file sinks on hosts whose filesystem
	// cannot be written durably.
	ManagedRuntime bool

	// Dir is the directory file sinks are written to.
	Dir string

	// ConsoleOutput overrides the console destination. Defaults to
	// os.Stdout.
	ConsoleOutput io.Writer
}

// Logger is a leveled, structured logger with five severities:
// error, warn, info, http, and debug.
type Logger struct {
	slogger    *slog.Logger
	minLevel   slog.Level
	production bool
	closers    []io.Closer
}

// New builds a Logger from the given options. It never fails: if the log
// directory cannot be prepared, file sinks are dropped and the logger
// degrades to console-only.
func New(opts Options) *Logger {
	consoleOut := opts.ConsoleOutput
	if consoleOut == nil {
		consoleOut = os.Stdout
	}

	minLevel := slog.LevelInfo
	if opts.Environment == envDevelopment {
		minLevel = slog.LevelDebug
	}

	logger := &Logger{
		minLevel:   minLevel,
		production: opts.Environment == envProduction,
	}

	handlers := []slog.Handler{newConsoleHandler(consoleOut)}
	if !opts.ManagedRuntime {
		handlers = append(handlers, logger.fileSinks(opts.Dir)...)
	}

	logger.slogger = slog.New(fanoutHandler{handlers: handlers})
	return logger
}

func (l *Logger) fileSinks(dir string) []slog.Handler {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		// Non-writable filesystem: keep running on the console sink.
		return nil
	}

	combined := l.fileWriter(filepath.Join(dir, combinedLogFile), combinedRetention)
	errorOnly := l.fileWriter(filepath.Join(dir, errorLogFile), errorRetention)
	httpOnly := l.fileWriter(filepath.Join(dir, httpLogFile), httpRetention)

	return []slog.Handler{
		minLevelSink(jsonHandler(combined), l.minLevel),
		minLevelSink(jsonHandler(errorOnly), slog.LevelError),
		exactLevelSink(jsonHandler(httpOnly), LevelHTTP),
	}
}

func (l *Logger) fileWriter(path string, retentionDays int) io.Writer {
	w := &lumberjack.Logger{
		Filename: path,
		MaxSize:  maxFileSizeMB,
		MaxAge:   retentionDays,
		Compress: true,
	}
	l.closers = append(l.closers, w)
	return w
}

func jsonHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.LevelKey {
				if level, ok := attr.Value.Any().(slog.Level); ok {
					attr.Value = slog.StringValue(levelName(level))
				}
			}
			return attr
		},
	})
}

// Error logs a failure. The error's message is attached to the record;
// outside production a stack trace is attached as well.
func (l *Logger) Error(msg string, err error, ctx ...map[string]any) {
	attrs := contextAttrs(ctx)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if !l.production {
			attrs = append(attrs, slog.String("stack", string(debug.Stack())))
		}
	}
	l.log(slog.LevelError, msg, attrs)
}

// Warn logs an unusual but non-fatal condition.
func (l *Logger) Warn(msg string, ctx ...map[string]any) {
	l.log(slog.LevelWarn, msg, contextAttrs(ctx))
}

// Info logs an informational message.
func (l *Logger) Info(msg string, ctx ...map[string]any) {
	l.log(slog.LevelInfo, msg, contextAttrs(ctx))
}

// HTTP logs a request record at the http level.
func (l *Logger) HTTP(msg string, ctx ...map[string]any) {
	l.log(LevelHTTP, msg, contextAttrs(ctx))
}

// Debug logs a development-only diagnostic message.
func (l *Logger) Debug(msg string, ctx ...map[string]any) {
	l.log(slog.LevelDebug, msg, contextAttrs(ctx))
}

// Enabled reports whether records at the given level are emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	return level >= l.minLevel
}

// Close flushes and closes the file sinks.
func (l *Logger) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (l *Logger) log(level slog.Level, msg string, attrs []slog.Attr) {
	if !l.Enabled(level) {
		return
	}
	l.slogger.LogAttrs(context.Background(), level, msg, attrs...)
}

func contextAttrs(ctx []map[string]any) []slog.Attr {
	var attrs []slog.Attr
	for _, m := range ctx {
		for key, value := range m {
			attrs = append(attrs, slog.Any(key, value))
		}
	}
	return attrs
}
