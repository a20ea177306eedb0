package server

import (
	"encoding/json"
	"net/http"

	"github.com/pokeshiri/server/internal/report"
)

// ErrorResponse is returned for all error responses. Notification is set
// when the error came from the game and should be shown to the player.
type ErrorResponse struct {
	Error        string               `json:"error"`
	Notification *report.Notification `json:"notification,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeReport dispatches err to the reporter and answers with the status of
// its category.
func writeReport(w http.ResponseWriter, r *http.Request, reporter *report.Reporter, err error) {
	e := report.As(err)
	n := reporter.Report(r.Context(), e)
	writeJSON(w, e.Category.Status(), ErrorResponse{Error: n.Message, Notification: &n})
}
