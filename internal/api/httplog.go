package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// accessRecorder captures the response status and size for the access log,
// plus anything a handler wants on the log line: the error message behind a
// failed response, and domain attributes such as the classified intent of
// an advisory request.
type accessRecorder struct {
	middleware.WrapResponseWriter
	errMsg string
	attrs  []slog.Attr
}

func (rec *accessRecorder) SetErrorMessage(msg string) {
	rec.errMsg = msg
}

func (rec *accessRecorder) Annotate(key string, value any) {
	rec.attrs = append(rec.attrs, slog.Any(key, value))
}

func (rec *accessRecorder) Flush() {
	if f, ok := rec.WrapResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// annotate attaches a key/value pair to the current request's access log
// entry. Outside the logging middleware it is a no-op.
func annotate(w http.ResponseWriter, key string, value any) {
	if rec, ok := w.(interface{ Annotate(string, any) }); ok {
		rec.Annotate(key, value)
	}
}

// requestLogger emits one access log entry per request. Server errors log
// at error level and client errors at warn; successful health probes drop
// to debug so pollers do not drown the log.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &accessRecorder{WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor)}

			next.ServeHTTP(rec, r)

			status := rec.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)

			attrs := make([]slog.Attr, 0, 10+len(rec.attrs))
			attrs = append(attrs,
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", route),
				slog.Int("status", status),
				slog.Int("bytes", rec.BytesWritten()),
				slog.Int64("elapsed_ms", time.Since(start).Milliseconds()),
				slog.String("remote", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
			)
			attrs = append(attrs, rec.attrs...)
			if rec.errMsg != "" {
				attrs = append(attrs, slog.String("error_message", rec.errMsg))
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case route == "/api/health":
				level = slog.LevelDebug
			}
			logger.LogAttrs(r.Context(), level, "request", attrs...)
		})
	}
}

// recoverPanics converts handler panics into logged 500 responses. When the
// handler already wrote a status the response is left as is.
func recoverPanics(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rv := recover()
				if rv == nil {
					return
				}
				logger.LogAttrs(r.Context(), slog.LevelError, "panic while handling request",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("route", routePattern(r)),
					slog.String("remote", r.RemoteAddr),
					slog.String("panic", fmt.Sprint(rv)),
					slog.String("stack", string(debug.Stack())),
				)
				if rec, ok := w.(interface{ Status() int }); ok && rec.Status() != 0 {
					return
				}
				writeError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
