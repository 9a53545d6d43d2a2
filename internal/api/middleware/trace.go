package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// TraceMiddleware stores a trace ID and a logger tagged with it in the
// request context. The chi request ID is reused when present.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), chimiddleware.GetReqID(r.Context()))
			log := base.With(slog.String("trace_id", shared.GetTraceID(ctx)))
			ctx = logger.WithLogger(ctx, log)

			log.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
