package server

import "net/http"

// SessionResponse is the response for POST /api/sessions.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

func handleCreateSession(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Create(r.Context())
		writeJSON(w, http.StatusCreated, SessionResponse{SessionID: sess.id})
	}
}
