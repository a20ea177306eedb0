package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/report"
)

// GroupsResponse is the response for GET /api/groups.
type GroupsResponse struct {
	Groups []game.GroupSnapshot `json:"groups"`
}

// ActiveCharRequest is the request body for PUT /api/groups/{groupID}/active.
type ActiveCharRequest struct {
	Char string `json:"char"`
}

func handleListGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GroupsResponse{Groups: sessionFrom(r).app.Groups()})
	}
}

func handleToggleGroup(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := sessionFrom(r).app.ToggleGroup(chi.URLParam(r, "groupID"))
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func handleSetActiveChar(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActiveCharRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		list, err := sessionFrom(r).app.SelectChar(chi.URLParam(r, "groupID"), strings.TrimSpace(req.Char))
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
