package server

import (
	"net/http"
	"strings"
)

// sessionIDFromRequest reads the Bearer token. Event streams may pass it as
// the token query parameter instead, since EventSource cannot set headers.
func sessionIDFromRequest(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(auth, "Bearer "); found && token != "" {
		return token, nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", ErrNoSession
}
