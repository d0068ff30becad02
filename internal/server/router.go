package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kitchencost/internal/handlers"
	applog "kitchencost/internal/log"
)

func newRouter(h *handlers.Handler, sessions *scs.SessionManager) http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http middleware")
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(sessions.LoadAndSave)

	h.Register(r)

	if applog.Logger().Enabled(context.Background(), slog.LevelDebug) {
		_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			applog.Debug(context.Background(), "route registered", "method", method, "path", route)
			return nil
		})
	}
	return r
}

// requestLogger tags the request context with its request id and logs one
// line per request once the response is written.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(applog.WithAttrs(r.Context(), "request_id", middleware.GetReqID(r.Context())))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		}
		if status >= http.StatusInternalServerError {
			applog.Warn(r.Context(), "http request", args...)
			return
		}
		applog.Info(r.Context(), "http request", args...)
	})
}
