package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	levelVar = new(slog.LevelVar)
	loggerMu sync.RWMutex
	logger   = newLogger(FormatText)
)

func init() {
	levelVar.Set(slog.LevelInfo)
}

func newLogger(format string) *slog.Logger {
	return slog.New(newHandler(os.Stdout, format))
}

func newHandler(w io.Writer, format string) slog.Handler {
	opts := slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				attr.Key = "level"
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.MessageKey:
				attr.Key = "msg"
			}
			return attr
		},
	}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, &opts)
	}
	return slog.NewTextHandler(w, &opts)
}

// SetLevel updates the minimum logging level accepted by the global logger.
// Supported levels are "debug", "info", "warn" and "error". Values are case-insensitive.
func SetLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		levelVar.Set(slog.LevelInfo)
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "warn", "warning":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}

// SetFormat switches the global logger between logfmt ("text") and JSON output.
func SetFormat(format string) error {
	switch normalized := strings.ToLower(strings.TrimSpace(format)); normalized {
	case "", FormatText:
		setLogger(newLogger(FormatText))
	case FormatJSON:
		setLogger(newLogger(FormatJSON))
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
	return nil
}

// Logger returns the underlying slog.Logger instance.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func setLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// ReplaceLogger installs a custom slog.Logger.
func ReplaceLogger(l *slog.Logger) {
	if l == nil {
		panic("log: nil logger provided")
	}
	setLogger(l)
}

type attrsKey struct{}

// WithAttrs returns a copy of ctx carrying args. Every entry logged through
// this package with the returned context includes them ahead of its own args.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	ctx = orBackground(ctx)
	existing := scopedAttrs(ctx)
	merged := make([]any, 0, len(existing)+len(args))
	merged = append(merged, existing...)
	merged = append(merged, args...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

func scopedAttrs(ctx context.Context) []any {
	attrs, _ := ctx.Value(attrsKey{}).([]any)
	return attrs
}

func logAt(ctx context.Context, level slog.Level, msg string, args []any) {
	ctx = orBackground(ctx)
	l := Logger()
	if !l.Enabled(ctx, level) {
		return
	}
	if scoped := scopedAttrs(ctx); len(scoped) > 0 {
		args = append(append(make([]any, 0, len(scoped)+len(args)), scoped...), args...)
	}
	l.Log(ctx, level, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelDebug, msg, args) }

func Info(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelInfo, msg, args) }

func Warn(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelWarn, msg, args) }

func Error(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelError, msg, args) }

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
