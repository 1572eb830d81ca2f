// Package middleware provides HTTP middleware for request logging and panic recovery.
// It integrates with zerolog and tags every request with a unique request id.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tansive/archsrv/internal/common/httpx"
	"github.com/tansive/archsrv/internal/common/logtrace"
	"github.com/tansive/archsrv/internal/common/uuid"
)

const RequestIDHeader = "X-Archsrv-Request-ID"

// RequestLogger assigns a request id, stores it and a request-scoped logger in the context,
// echoes the id in the response headers and logs the start and completion of the request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := newRequestId()
		ctx := logtrace.WithRequestId(r.Context(), requestID)
		ctx = log.With().Str("request_id", requestID).Logger().WithContext(ctx)

		rw := httpx.NewResponseWriter(w)
		rw.Header().Set(RequestIDHeader, requestID)

		log.Ctx(ctx).Info().
			Str("requestMethod", r.Method).
			Str("requestPath", r.URL.Path).
			Str("requestQuery", r.URL.RawQuery).
			Str("remoteIP", r.RemoteAddr).
			Str("proto", r.Proto).
			Msg("incoming request")

		defer func() {
			log.Ctx(ctx).Info().
				Int("status", rw.Status()).
				Str("duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds())).
				Msg("request completed")
		}()

		next.ServeHTTP(rw, r.WithContext(ctx))
	})
}

// newRequestId returns a UUIDv7, or a timestamp-based id if generation fails.
func newRequestId() string {
	u, err := uuid.NewRandom()
	if err == nil {
		return u.String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
