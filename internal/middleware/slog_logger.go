// Package middleware provides HTTP middleware for the trip planner API server.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/internal/domain"
)

type requestLogKey struct{}

// requestLog collects attributes that inner middleware learn about the
// request and the outer logger reports once the handler returns.
type requestLog struct {
	role domain.Role
}

// noteRole records the authenticated role for the request log line.
func noteRole(ctx context.Context, role domain.Role) {
	if rl, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		rl.role = role
	}
}

// NewSlogLogger returns a middleware that logs each request as a structured
// JSON line via the provided slog.Logger. It captures method, path, HTTP
// status, duration, the request ID set by chi's RequestID middleware and
// the session role ("anonymous" when the request carried no session).
//
// Wire it after chimiddleware.RequestID and before NewAuthenticator.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rl := &requestLog{}
			r = r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl))

			// WrapResponseWriter intercepts WriteHeader so the status code
			// can be read after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			role := "anonymous"
			if rl.role != "" {
				role = string(rl.role)
			}
			log.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
				"role", role,
			)
		})
	}
}
