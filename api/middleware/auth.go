package middleware

import (
	"net/http"
	"strings"

	"exptracker/api/responses"
	"exptracker/auth"
	"exptracker/models"
	"exptracker/service"
)

// Auth validates a bearer token, registers the player on first sight
// and seeds the request context with their Discord ID.
func Auth(cfg auth.TokenConfig, users service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := Logger(r.Context())

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(logger, w, responses.Unauthorized("missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(logger, w, responses.Unauthorized("missing credentials"))
				return
			}

			claims, err := auth.ParseAccessToken(cfg, token)
			if err != nil {
				logger.WithError(err).Debug("Rejected access token")
				responses.WriteError(logger, w, responses.Unauthorized("invalid token"))
				return
			}

			identity := claims.Identity()
			if _, err := users.GetOrCreateUser(r.Context(), identity.DiscordID, models.Profile{
				Username:  identity.Username,
				FirstName: identity.FirstName,
				LastName:  identity.LastName,
			}); err != nil {
				responses.WriteError(logger, w, err)
				return
			}

			ctx := WithDiscordID(r.Context(), identity.DiscordID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
