package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionIDHeader = "X-Session-Id"

// SessionIDMiddleware attaches a session ID to every request. Clients that
// want interaction state to carry across requests echo the header back; a
// request without one gets a fresh session.
func SessionIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(sessionIDHeader)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		w.Header().Set(sessionIDHeader, sessionID)
		ctx := ContextWithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
