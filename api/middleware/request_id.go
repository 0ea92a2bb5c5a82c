package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID propagates or generates a request id and seeds the request logger with it
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, reqID)

		ctx := context.WithValue(r.Context(), ctxRequestID, reqID)
		ctx = WithLogger(ctx, Logger(ctx).WithField("request_id", reqID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
