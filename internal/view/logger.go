package view

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
)

type LogLevel int

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelSilent
)

// Above any level slog defines
const silentLevel = slog.Level(100)

// ParseLogLevel accepts the level names used by the log setting. An empty name is silent
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(name) {
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "", "silent":
		return LogLevelSilent, nil
	default:
		return LogLevelSilent, fmt.Errorf("unknown log level %q", name)
	}
}

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return silentLevel
	}
}

// slogLogger adapts a *slog.Logger to Logger
type slogLogger struct {
	logger *slog.Logger
}

var _ Logger = (*slogLogger)(nil)

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func rewriteLogLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) != 0 {
		return a
	}

	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch level {
	case slog.LevelDebug:
		a.Value = slog.StringValue("DEBUG")
	case slog.LevelInfo:
		a.Value = slog.StringValue(color.GreenString("INFO"))
	case slog.LevelWarn:
		a.Value = slog.StringValue(color.YellowString("WARN"))
	case slog.LevelError:
		a.Value = slog.StringValue(color.RedString("ERROR"))
	}
	return a
}

// NewHumanLogger creates a colored, human-readable logger
func NewHumanLogger(w io.Writer, level LogLevel) Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:       level.toSlogLevel(),
		TimeFormat:  time.DateTime,
		ReplaceAttr: rewriteLogLevel,
	})
	return &slogLogger{logger: slog.New(handler)}
}

// NewJSONLogger creates a JSON-structured logger
func NewJSONLogger(w io.Writer, level LogLevel) Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.toSlogLevel()})
	return &slogLogger{logger: slog.New(handler)}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() Logger {
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: silentLevel})
	return &slogLogger{logger: slog.New(handler)}
}
