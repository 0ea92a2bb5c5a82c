package middleware

import (
	"fmt"
	"net/http"

	"exptracker/api/responses"
)

// Recoverer turns a handler panic into a 500 response
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger := Logger(r.Context()).WithField("panic", rec)
				responses.WriteError(logger, w, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
