package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/akolanti/GoDocQA/internal/config"
)

type Logger struct {
	inner *slog.Logger
}

// Init installs the process wide slog handler: text for local runs, JSON in prod.
func Init(isProd bool, level slog.Level) {
	slog.SetDefault(slog.New(newHandler(os.Stdout, isProd, level)))
}

func newHandler(w io.Writer, isProd bool, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{
		Level:     level,
		AddSource: isProd,
	}
	if isProd {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

// TraceId returns the trace id stored on ctx by the trace middleware, or "".
func TraceId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

// WithTrace returns a logger carrying the traceId of ctx.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	if trace := TraceId(ctx); trace != "" {
		return l.With("traceId", trace)
	}
	return l
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithSource(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithSource(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithSource(slog.LevelDebug, msg, args...)
}

func (l *Logger) logWithSource(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.inner.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// Skip 3 levels: runtime.Callers, logWithSource, and Err/Dbg wrapper - so the source points at the caller
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), level, msg, pcs[0])
	record.Add(args...)
	_ = l.inner.Handler().Handle(ctx, record)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}
