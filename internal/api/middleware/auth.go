package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/healthassistant/hub/internal/api/response"
	"github.com/healthassistant/hub/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionCookieName is accepted as an alternative to the Authorization header
// for browser clients.
const sessionCookieName = "session_token"

// Auth middleware resolves the session token from the Authorization header
// (Bearer <token>) or the session cookie, and rejects requests without a
// valid, unexpired session. The resolved session is stored in the request
// context; handlers read it with SessionFromContext.
func Auth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(sessionCookieName); err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				response.RespondUnauthorized(w, "Missing session token. Expected: Authorization: Bearer <token>")
				return
			}

			sess, ok := sessions.Get(token)
			if !ok {
				response.RespondUnauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}

// ContextWithSession returns a context carrying the session, as the Auth
// middleware would produce. Exposed for handler tests.
func ContextWithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext returns the session resolved by the Auth middleware.
// The boolean is false for requests that did not pass through Auth.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)

	return sess, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}
