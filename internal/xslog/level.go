package xslog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const EnvKey = "LOG_LEVEL"

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv(EnvKey)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func NewLoggerFromEnv(w io.Writer) *slog.Logger {
	return NewLogger(w, levelFromEnv())
}
