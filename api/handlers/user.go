package handlers

import (
	"net/http"

	"exptracker/api/middleware"
	"exptracker/api/responses"
	"exptracker/api/validators"
	"exptracker/models"
	"exptracker/service"
)

func discordID(r *http.Request) (int64, error) {
	id, ok := middleware.DiscordIDFromContext(r.Context())
	if !ok {
		return 0, responses.Unauthorized("missing credentials")
	}
	return id, nil
}

// GetUser returns the authenticated player's profile and pool
func GetUser(users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, err := discordID(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		user, err := users.GetUserInfo(r.Context(), id)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, userResponse{
			Username:     user.Username,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			UnspentStars: user.UnspentStars,
		})
	}
}

// AdjustPool adds stars to, or removes stars from, the player's pool
func AdjustPool(ledger service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, err := discordID(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		var req starsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		result, err := ledger.AdjustPoolStars(r.Context(), id, req.Stars, req.Reason)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, adjustResponse{AddedStars: result.AddedStars})
	}
}

// ListLogs returns the player's audit log, newest first. ?limit=n caps the result.
func ListLogs(logs service.LogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, err := discordID(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		var entries []*models.LogEntry
		if limit > 0 {
			entries, err = logs.ListRecentLogs(r.Context(), id, limit)
		} else {
			entries, err = logs.ListLogs(r.Context(), id)
		}
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, newLogListResponse(entries))
	}
}
