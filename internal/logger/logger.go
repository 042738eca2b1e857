// Package logger provides tooling for structured logging.
// With logger, you can use context to add logging details to your call stack.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	// Out is where the log events are written.
	// When nil it defaults to os.Stderr.
	Out io.Writer
	// Level is the minimum level that will be written.
	// When empty it defaults to LevelInfo.
	Level Level
	// Console switches the output from JSON lines to a human readable format.
	Console bool
}

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// ParseLevel accepts the level names and their one letter abbreviations.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "debug":
		return LevelDebug, nil
	case "", "i", "info":
		return LevelInfo, nil
	case "w", "warn", "warning":
		return LevelWarn, nil
	case "e", "error":
		return LevelError, nil
	case "f", "c", "fatal", "critical":
		return LevelFatal, nil
	default:
		return "", fmt.Errorf("unknown logging level: %q", s)
	}
}

func (l Logger) Debug(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, zerolog.DebugLevel, msg, ds)
}

func (l Logger) Info(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, zerolog.InfoLevel, msg, ds)
}

func (l Logger) Warn(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, zerolog.WarnLevel, msg, ds)
}

func (l Logger) Error(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, zerolog.ErrorLevel, msg, ds)
}

// Fatal logs on fatal level, but unlike zerolog's Fatal, it will not exit the process.
func (l Logger) Fatal(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, zerolog.FatalLevel, msg, ds)
}

func (l Logger) log(ctx context.Context, level zerolog.Level, msg string, ds []LoggingDetail) {
	zl := l.zerolog()
	event := zl.WithLevel(level)
	if event == nil {
		return
	}
	entry := getLoggingDetailsFromContext(ctx)
	for _, d := range ds {
		if d == nil {
			continue
		}
		d.addTo(entry)
	}
	if len(entry) > 0 {
		event = event.Fields(map[string]any(entry))
	}
	event.Msg(msg)
}

func (l Logger) zerolog() zerolog.Logger {
	var out io.Writer = os.Stderr
	if l.Out != nil {
		out = l.Out
	}
	if l.Console {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(l.zerologLevel()).
		With().
		Timestamp().
		Logger()
}

func (l Logger) zerologLevel() zerolog.Level {
	switch l.Level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
