package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestIDKey is an unexported type for the request id context key
type requestIDKey struct{}

// LoggingMiddleware returns a middleware that logs each request and its
// response using the provided SugaredLogger. Every request gets a unique
// request id, echoed back in the X-Request-ID header.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := uuid.New().String()

			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			r = r.WithContext(
				context.WithValue(r.Context(), requestIDKey{}, reqID),
			)
			w.Header().Set("X-Request-ID", reqID)

			next.ServeHTTP(rw, r)

			log.Infow("request handled",
				"request_id", reqID,
				"method", r.Method,
				"uri", r.RequestURI,
				"status", rw.statusCode,
				"response_size", rw.size,
				"duration", time.Since(start),
			)
		})
	}
}

// RequestIDFromContext returns the request id stored by LoggingMiddleware.
// Returns an empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
