package logging

import "log/slog"

// LevelHTTP sits between debug and info and is reserved for request logs.
const LevelHTTP = slog.Level(-2)

// levelName maps a slog level to the tag used by every sink, including
// the custom http level that slog would otherwise render as "INFO-2".
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	case level >= LevelHTTP:
		return "HTTP"
	default:
		return "DEBUG"
	}
}
