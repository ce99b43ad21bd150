package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

// Initialize configures the process-wide logger to write to stdout.
func Initialize(level, format string) {
	Setup(level, format, os.Stdout)
}

// Setup configures the process-wide logger. Unknown levels fall back to
// info, and any format other than "json" yields text output.
func Setup(level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	current.Store(l)
	slog.SetDefault(l)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }

func InfoContext(ctx context.Context, msg string, args ...any) {
	get().InfoContext(ctx, msg, args...)
}

// with prepends fixed attributes to caller supplied ones.
func with(fixed []any, args []any) []any {
	return append(fixed, args...)
}

// outcome logs ok at debug level, or failed at error level with the error
// attached.
func outcome(ok, failed string, err error, args []any) {
	if err != nil {
		get().Error(failed, append(args, "error", err)...)
		return
	}
	get().Debug(ok, args...)
}

// EnterMethod, ExitMethod and ExitMethodWithError trace service calls.
func EnterMethod(method string, args ...any) {
	get().Debug("→ "+method, with([]any{"method", method, "event", "enter"}, args)...)
}

func ExitMethod(method string, args ...any) {
	get().Debug("← "+method, with([]any{"method", method, "event", "exit"}, args)...)
}

func ExitMethodWithError(method string, err error, args ...any) {
	get().Error("← "+method+" failed", with([]any{"method", method, "event", "exit", "error", err}, args)...)
}

// DatabaseCall logs a statement before it is sent to PostgreSQL.
func DatabaseCall(operation, query string, args ...any) {
	get().Debug("db call", with([]any{"operation", operation, "query", query}, args)...)
}

func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	outcome("db ok", "db call failed", err, with([]any{"operation", operation, "rows_affected", rowsAffected}, args))
}

// ExternalServiceCall logs a request to the payment provider or a
// notification sink.
func ExternalServiceCall(service, operation string, args ...any) {
	get().Debug("external call", with([]any{"service", service, "operation", operation}, args)...)
}

func ExternalServiceResult(service, operation string, err error, args ...any) {
	outcome("external call ok", "external call failed", err, with([]any{"service", service, "operation", operation}, args))
}

// HTTPRequest logs a completed request. 5xx responses go out at error level.
func HTTPRequest(method, route string, status int, duration time.Duration, args ...any) {
	attrs := with([]any{"method", method, "route", route, "status", status, "duration_ms", duration.Milliseconds()}, args)
	if status >= 500 {
		get().Error("HTTP request failed", attrs...)
		return
	}
	get().Info("HTTP request", attrs...)
}

func JobStarted(job string, args ...any) {
	get().Info("Job started", with([]any{"job", job}, args)...)
}

func JobFinished(job string, duration time.Duration, err error, args ...any) {
	attrs := with([]any{"job", job, "duration_ms", duration.Milliseconds()}, args)
	if err != nil {
		get().Error("Job failed", append(attrs, "error", err)...)
		return
	}
	get().Info("Job finished", attrs...)
}
