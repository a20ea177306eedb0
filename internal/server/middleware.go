package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeySession ctxKey = iota

func sessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := sessionIDFromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "session token required")
				return
			}

			sess, err := sessions.Get(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) *session {
	return r.Context().Value(ctxKeySession).(*session)
}
