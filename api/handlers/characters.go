package handlers

import (
	"net/http"

	"exptracker/api/middleware"
	"exptracker/api/responses"
	"exptracker/api/validators"
	"exptracker/models"
	"exptracker/service"
)

// ListCharacters returns the player's characters, most stars first
func ListCharacters(logs service.LogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, err := discordID(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		characters, err := logs.ListCharacters(r.Context(), id)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, newCharacterListResponse(characters))
	}
}

// GetCharacter returns one of the player's characters
func GetCharacter(logs service.LogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, characterID, err := characterPath(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		character, err := logs.GetCharacter(r.Context(), id, characterID)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, newCharacterResponse(character))
	}
}

// CreateCharacter creates a character for the player
func CreateCharacter(ledger service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, err := discordID(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		var req createCharacterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		character, err := ledger.CreateCharacter(r.Context(), id, req.Name, req.Stars, req.Dead)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCharacterResponse(character))
	}
}

// UpdateCharacter applies a partial update. PUT and PATCH behave the same.
func UpdateCharacter(ledger service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, characterID, err := characterPath(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		var req updateCharacterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		character, err := ledger.UpdateCharacter(r.Context(), id, characterID, models.CharacterUpdate{
			Name:   req.Name,
			Stars:  req.Stars,
			Dead:   req.Dead,
			Reason: req.Reason,
		})
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, newCharacterResponse(character))
	}
}

// DeleteCharacter removes one of the player's characters
func DeleteCharacter(ledger service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, characterID, err := characterPath(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		if _, err := ledger.DeleteCharacter(r.Context(), id, characterID); err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

// SpendStars moves stars from the pool to a character, or back with a negative amount
func SpendStars(ledger service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.Logger(r.Context())
		id, characterID, err := characterPath(r)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		var req starsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		result, err := ledger.SpendStars(r.Context(), id, characterID, req.Stars, req.Reason)
		if err != nil {
			responses.WriteError(logger, w, err)
			return
		}

		responses.WriteSuccess(w, spendResponse{SpentStars: result.SpentStars})
	}
}

func characterPath(r *http.Request) (int64, int64, error) {
	id, err := discordID(r)
	if err != nil {
		return 0, 0, err
	}
	characterID, err := validators.PathInt64(r, "id")
	if err != nil {
		return 0, 0, err
	}
	return id, characterID, nil
}
