package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// NewStructuredLogger is a chi middleware emitting one structured line per
// request. Client errors log at warn, server errors at error, so a watch on
// the error level only catches failures that are ours.
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("elapsed_ms", time.Since(start).Milliseconds()),
			}
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}

			switch {
			case ww.Status() >= 500:
				logger.Error("request failed", attrs...)
			case ww.Status() >= 400:
				logger.Warn("request rejected", attrs...)
			default:
				logger.Info("request served", attrs...)
			}
		}
		return http.HandlerFunc(fn)
	}
}
