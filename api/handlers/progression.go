package handlers

import (
	"net/http"

	"exptracker/api/responses"
	"exptracker/progression"
)

// Progression returns the level table
func Progression() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, progression.Table())
	}
}
