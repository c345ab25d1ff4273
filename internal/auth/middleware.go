package auth

import (
	"context"
	"net/http"
	"time"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// SessionMiddleware puts the user id of a valid auth cookie into the request
// context and renews the cookie once it is past half its lifetime. Requests
// without a valid cookie pass through; handlers decide whether they need a user.
func (h *AuthHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.parseToken(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		userID := claims["user_id"].(string)

		// Sliding session: refresh token if it's more than halfway through its duration
		if exp, ok := claims["exp"].(float64); ok {
			remaining := time.Unix(int64(exp), 0).Sub(h.now())
			if remaining < TokenDuration/2 {
				if renewed, err := h.sessionCookie(userID); err == nil {
					http.SetCookie(w, &renewed)
				}
			}
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
