package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/Konsultn-Engineering/sqlbridge/idgen"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// statusResponseWriter wraps http.ResponseWriter to capture the status code.
type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// withRequestLogger assigns a request id, stores a request-scoped logger in
// the context and writes one access log line per request.
func withRequestLogger(logger zerolog.Logger, ids idgen.Generator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			if generated, err := ids.Generate(); err == nil {
				id = generated
			} else {
				logger.Warn().Err(err).Msg("Failed to generate request id")
			}
		}
		w.Header().Set(RequestIDHeader, id)

		reqLogger := logger.With().Str("request_id", id).Logger()
		r = r.WithContext(reqLogger.WithContext(r.Context()))

		wrapped := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		event := reqLogger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", wrapped.status).
			Dur("duration", time.Since(start))
		if cl := r.ContentLength; cl > 0 {
			event.Int64("content_length", cl)
		}
		event.Msg("Request")
	})
}

// withRecovery turns a handler panic into a server error envelope.
func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("Handler panicked")
				respond(w, CodeServerError, nil, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
