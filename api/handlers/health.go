package handlers

import (
	"context"
	"net/http"
	"time"

	"exptracker/api/middleware"
	"exptracker/api/responses"
)

// Pinger is anything that can report whether its backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports whether the database answers
func Healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				middleware.Logger(r.Context()).WithError(err).Warn("Health check failed")
				responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
