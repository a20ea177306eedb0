package server

import (
	"net/http"

	"github.com/pokeshiri/server/internal/game"
)

// StatusResponse is the response for GET /api/status.
type StatusResponse struct {
	game.StatusSnapshot
	Warning string `json:"warning,omitempty"`
}

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		warning, _ := sess.views.Warning.Last()
		writeJSON(w, http.StatusOK, StatusResponse{
			StatusSnapshot: sess.app.Status(),
			Warning:        warning.Message,
		})
	}
}
