// internal/api/middleware.go
//
// Small, composable HTTP wrappers: request logging and panic recovery.
// Both log through the shared zap sugared logger rather than the stdlib
// logger so request events land in the same JSON sink as everything else.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/mobilepost/internal/apierr"
)

// RequestLogger emits one INFO span per request with method, path, status,
// byte count, and latency.
func RequestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// Recover converts a handler panic into the generic server-error envelope.
// The panic value and stack context are logged; the caller sees only the
// taxonomy message.
func Recover(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorw("handler panic", "path", r.URL.Path, "panic", rec)
					fail(w, apierr.New(apierr.CodeServerError, ""))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
