package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/inkwell/pkg/httpx"
	"github.com/ghuser/inkwell/pkg/logger"
)

const sessionName = "inkwell_session"
const sessionAuthorIDKey = "author_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the AuthorID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a valid author_id.
//
// After this middleware, handlers can safely call auth.AuthorIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			authorIDStr, ok := session.Values[sessionAuthorIDKey].(string)
			if !ok || authorIDStr == "" {
				log.WarnContext(r.Context(), "session missing author_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			authorID, err := uuid.Parse(authorIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid author_id in session", "author_id", authorIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			ctx := WithAuthorID(r.Context(), authorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
